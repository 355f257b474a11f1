// Package upload stores multipart photo uploads on local disk and
// returns the relative path persisted with the owning record.
package upload

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SavePhoto reads the named multipart field and writes it under dir with
// a timestamped filename. A missing file is not an error, the empty path
// signals "no photo uploaded".
func SavePhoto(ctx *gin.Context, field, dir string) (string, error) {
	if ctx.ContentType() != "multipart/form-data" {
		return "", nil
	}

	file, err := ctx.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}

		return "", fmt.Errorf("ctx.FormFile -> %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported photo type %q", ext)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	dst := filepath.Join(dir, filename)

	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("ctx.SaveUploadedFile -> %w", err)
	}

	return dst, nil
}
