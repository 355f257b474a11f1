package v1

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifz/kantin-api/internal/config"
	"github.com/hanifz/kantin-api/internal/domain"
)

type stubAuthService struct {
	gotStudent domain.Student
	gotStaff   domain.Staff
}

func (s *stubAuthService) SignupStudent(_ context.Context, student domain.Student) (domain.Student, error) {
	s.gotStudent = student
	student.ID = 1

	return student, nil
}

func (s *stubAuthService) SignupStaff(_ context.Context, staff domain.Staff) (domain.Staff, error) {
	s.gotStaff = staff
	staff.ID = 1

	return staff, nil
}

func (s *stubAuthService) LoginStudent(_ context.Context, _, _ string) (domain.Student, error) {
	return domain.Student{}, nil
}

func (s *stubAuthService) LoginStaff(_ context.Context, _, _ string) (domain.User, *domain.Staff, error) {
	return domain.User{}, nil, nil
}

func newAuthRouter(svc *stubAuthService, uploadDir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-signing-key"}, svc, uploadDir)
	router.POST("/api/v1/auth/student/signup", handler.HandleStudentSignup)

	return router
}

func signupForm(t *testing.T, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"student_number":   "2024001",
		"name":             "Budi Santoso",
		"username":         "budi",
		"email":            "budi@example.com",
		"password":         "Rahasia123",
		"confirm_password": "Rahasia123",
	}
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}

	if withPhoto {
		part, err := writer.CreateFormFile("photo", "profil.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandleStudentSignup(t *testing.T) {
	t.Run("stores the photo sent with the registration", func(t *testing.T) {
		svc := &stubAuthService{}
		uploadDir := t.TempDir()
		router := newAuthRouter(svc, uploadDir)

		body, contentType := signupForm(t, true)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/student/signup", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2024001", svc.gotStudent.StudentNumber)
		require.NotEmpty(t, svc.gotStudent.Photo)

		saved, err := os.ReadFile(svc.gotStudent.Photo)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), saved)
	})

	t.Run("registers without a photo", func(t *testing.T) {
		svc := &stubAuthService{}
		router := newAuthRouter(svc, t.TempDir())

		body, contentType := signupForm(t, false)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/student/signup", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, svc.gotStudent.Photo)
	})
}
