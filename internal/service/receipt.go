package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hanifz/kantin-api/internal/domain"
)

// ReceiptService renders an order as a downloadable PDF receipt.
type ReceiptService struct {
	orders OrderRepository
}

func NewReceiptService(orders OrderRepository) *ReceiptService {
	return &ReceiptService{
		orders: orders,
	}
}

// Render produces the receipt PDF for one order. A student may only
// download receipts for their own orders; staff and admin accounts can
// fetch any.
func (s *ReceiptService) Render(ctx context.Context, orderID uint, actorRole string, actorStudentID uint) ([]byte, string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("s.orders.FindByID -> %w", err)
	}

	if actorRole == domain.RoleStudent && order.StudentID != actorStudentID {
		return nil, "", ErrNotOrderOwner
	}

	pdf, err := buildReceiptPDF(order)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("nota-pesanan-%d.pdf", order.ID)

	return pdf, filename, nil
}

const (
	receiptColItem = 60.0
	receiptColQty  = 20.0
	receiptColUnit = 30.0
	receiptColSub  = 30.0
)

func buildReceiptPDF(order domain.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, "KANTIN SEKOLAH", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Nota Pesanan", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	writeInfoLine(pdf, "No. Pesanan", fmt.Sprintf("#%d", order.ID))
	writeInfoLine(pdf, "Tanggal", order.OrderedAt.Format("02 Jan 2006 15:04"))
	writeInfoLine(pdf, "Pemesan", fmt.Sprintf("%s (%s)", order.StudentName, order.StudentNumber))
	writeInfoLine(pdf, "Stan", order.StallName)
	writeInfoLine(pdf, "Status", string(order.Status))
	pdf.Ln(4)

	writeReceiptTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range order.Lines {
		// A5 leaves little room; long orders continue on a fresh page
		// with the header repeated.
		if pdf.GetY() > 180 {
			pdf.AddPage()
			writeReceiptTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		pdf.CellFormat(receiptColItem, 6, line.MenuName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(receiptColQty, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(receiptColUnit, 6, formatRupiah(line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(receiptColSub, 6, formatRupiah(line.Subtotal()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(receiptColItem+receiptColQty+receiptColUnit, 6, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(receiptColSub, 6, formatRupiah(order.Total()), "1", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 4, "Terima kasih telah memesan di kantin sekolah.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Dicetak %s", time.Now().Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Output -> %w", err)
	}

	return buf.Bytes(), nil
}

func writeInfoLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(30, 5, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, ": "+value, "", 1, "L", false, 0, "")
}

func writeReceiptTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(receiptColItem, 6, "Menu", "1", 0, "C", false, 0, "")
	pdf.CellFormat(receiptColQty, 6, "Jumlah", "1", 0, "C", false, 0, "")
	pdf.CellFormat(receiptColUnit, 6, "Harga", "1", 0, "C", false, 0, "")
	pdf.CellFormat(receiptColSub, 6, "Subtotal", "1", 1, "C", false, 0, "")
}

func formatRupiah(amount float64) string {
	return fmt.Sprintf("Rp %.0f", amount)
}
