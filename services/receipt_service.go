package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/events"
	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/notifications"
	"github.com/yeremiapane/hotel-management-app/utils"
)

// ReceiptService issues the one-time proof-of-payment artifact for a
// paid reservation and handles its email delivery.
type ReceiptService struct {
	db     *gorm.DB
	dir    string
	mailer notifications.Mailer
}

func NewReceiptService(db *gorm.DB, dir string, mailer notifications.Mailer) *ReceiptService {
	return &ReceiptService{db: db, dir: dir, mailer: mailer}
}

// ReadyReceiptRow is one row of the receipt-ready listing.
type ReadyReceiptRow struct {
	ReservationID uint       `json:"reservation_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	PaymentAmount float64    `json:"payment_amount"`
	PaymentDate   *time.Time `json:"payment_date"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	RoomType      string     `json:"room_type"`
	RoomCode      string     `json:"room_code"`
}

// ListReady returns paid reservations that do not have a receipt yet,
// oldest settlements first.
func (s *ReceiptService) ListReady() ([]ReadyReceiptRow, error) {
	var rows []ReadyReceiptRow
	err := s.db.Table("reservations").
		Select(`reservations.id AS reservation_id, reservations.start_date, reservations.end_date,
			reservations.payment_amount, reservations.payment_date,
			customers.name AS customer_name, customers.email AS customer_email,
			rooms.type AS room_type, rooms.code AS room_code`).
		Joins("JOIN customers ON reservations.customer_id = customers.id").
		Joins("JOIN rooms ON reservations.room_id = rooms.id").
		Where("reservations.payment_status = ? AND reservations.receipt_issued = ?", PaymentStatusPaid, false).
		Order("reservations.payment_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReceiptNumber builds the deterministic receipt number for a
// reservation. Timestamp plus reservation id is unique without a
// central sequence.
func ReceiptNumber(reservationID uint, now time.Time) string {
	return fmt.Sprintf("RCP-%d-%d", now.Unix(), reservationID)
}

// Generate issues the receipt for a paid, unreceipted reservation.
// Eligibility is re-checked inside the transaction with the row locked,
// so issuance is exactly-once: a second call fails the check and
// inserts nothing.
func (s *ReceiptService) Generate(reservationID, issuedBy uint) (*models.Receipt, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var reservation models.Reservation
	err := lockForUpdate(tx).
		Preload("Customer").Preload("Room").Preload("Policy").
		Where("id = ? AND payment_status = ? AND receipt_issued = ?", reservationID, PaymentStatusPaid, false).
		First(&reservation).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEligible
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	now := time.Now()
	receiptNumber := ReceiptNumber(reservation.ID, now)
	filePath := filepath.Join(s.dir, receiptNumber+".pdf")

	if err := s.renderPDF(&reservation, receiptNumber, now, filePath); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	updates := map[string]interface{}{
		"receipt_issued": true,
		"receipt_path":   filePath,
	}
	if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
		tx.Rollback()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to flag receipt issued: %w", err)
	}

	receipt := models.Receipt{
		ReservationID: reservation.ID,
		ReceiptNumber: receiptNumber,
		FilePath:      filePath,
		IssuedDate:    now,
		IssuedBy:      issuedBy,
	}
	if err := tx.Create(&receipt).Error; err != nil {
		tx.Rollback()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to insert receipt record: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.BroadcastReceiptGenerated(receipt)

	return &receipt, nil
}

// renderPDF writes the static receipt document to the content dir.
func (s *ReceiptService) renderPDF(r *models.Reservation, receiptNumber string, issuedAt time.Time, path string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, receiptNumber, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Customer", r.Customer.Name)
	line("Room", fmt.Sprintf("%s (%s)", r.Room.Type, r.Room.Code))
	line("Check-in", r.StartDate.Format("02 Jan 2006"))
	line("Check-out", r.EndDate.Format("02 Jan 2006"))
	line("Policy", r.Policy.Name)
	line("Total", utils.FormatCurrency(r.PaymentAmount))
	line("Status", r.PaymentStatus)
	line("Issued", issuedAt.Format("02 Jan 2006 15:04"))

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "This receipt is valid proof of payment.", "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// SendEmail delivers the issued receipt to the customer. The email_sent
// flag is flipped in the same transaction as the dispatch; a transport
// failure rolls everything back so the call is safe to retry.
func (s *ReceiptService) SendEmail(reservationID uint) (*models.Receipt, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var reservation models.Reservation
	err := lockForUpdate(tx).
		Preload("Customer").
		Where("id = ? AND receipt_issued = ?", reservationID, true).
		First(&reservation).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotIssued
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	var receipt models.Receipt
	if err := tx.Where("reservation_id = ?", reservation.ID).First(&receipt).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotIssued
		}
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	subject := fmt.Sprintf("Your receipt %s", receipt.ReceiptNumber)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Thank you for your payment of %s for your stay from %s to %s.</p><p>Your receipt number is <b>%s</b>.</p>",
		reservation.Customer.Name,
		utils.FormatCurrency(reservation.PaymentAmount),
		reservation.StartDate.Format("02 Jan 2006"),
		reservation.EndDate.Format("02 Jan 2006"),
		receipt.ReceiptNumber,
	)

	if err := s.mailer.Send(reservation.Customer.Name, reservation.Customer.Email, subject, body); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to deliver receipt email: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_sent":      true,
		"email_sent_date": now,
	}
	if err := tx.Model(&receipt).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to flag receipt emailed: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	events.BroadcastReceiptEmailed(receipt)

	return &receipt, nil
}
