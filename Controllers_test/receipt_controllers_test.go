package Controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/controllers"
	"github.com/yeremiapane/hotel-management-app/models"
)

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(toName, toEmail, subject, htmlContent string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func setupReceiptRouter(t *testing.T, db *gorm.DB, mailer *fakeMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(stubOperator("payment_manager"))
	receiptCtrl := controllers.NewReceiptController(db, t.TempDir(), mailer)
	r.GET("/api/receipts/ready", receiptCtrl.GetReadyReceipts)
	r.POST("/api/receipts/generate", receiptCtrl.GenerateReceipt)
	r.POST("/api/receipts/send", receiptCtrl.SendReceipt)
	return r
}

func generateReceipt(t *testing.T, r *gin.Engine, reservationID uint) *httptest.ResponseRecorder {
	payload := map[string]interface{}{"reservation_id": reservationID}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/receipts/generate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetReadyReceipts(t *testing.T) {
	db := setupTestDB(t)
	r := setupReceiptRouter(t, db, &fakeMailer{})

	seedReservation(t, db, 1, "paid", 100)
	seedReservation(t, db, 2, "pending", 200)
	issued := seedReservation(t, db, 3, "paid", 300)
	assert.NoError(t, db.Model(&issued).Update("receipt_issued", true).Error)

	req, _ := http.NewRequest("GET", "/api/receipts/ready", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
	row := data[0].(map[string]interface{})
	assert.Equal(t, float64(1), row["reservation_id"])
}

func TestGenerateReceiptIsExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	r := setupReceiptRouter(t, db, &fakeMailer{})

	seedReservation(t, db, 42, "paid", 150)

	// First call succeeds and flips the flag.
	w := generateReceipt(t, r, 42)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	receiptNumber := data["receipt_number"].(string)
	assert.Regexp(t, regexp.MustCompile(`^RCP-\d+-42$`), receiptNumber)

	var reservation models.Reservation
	assert.NoError(t, db.First(&reservation, 42).Error)
	assert.True(t, reservation.ReceiptIssued)
	assert.NotEmpty(t, reservation.ReceiptPath)

	// The PDF artifact exists in the content dir.
	_, err := os.Stat(reservation.ReceiptPath)
	assert.NoError(t, err)

	// Second call fails the eligibility check and inserts nothing.
	w = generateReceipt(t, r, 42)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Receipt{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateReceiptRequiresPaidReservation(t *testing.T) {
	db := setupTestDB(t)
	r := setupReceiptRouter(t, db, &fakeMailer{})

	seedReservation(t, db, 8, "pending", 100)

	w := generateReceipt(t, r, 8)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Receipt{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSendReceiptEmail(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeMailer{}
	r := setupReceiptRouter(t, db, mailer)

	seedReservation(t, db, 42, "paid", 150)
	assert.Equal(t, http.StatusOK, generateReceipt(t, r, 42).Code)

	payload := map[string]interface{}{"reservation_id": 42}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/receipts/send", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"maria@example.com"}, mailer.sent)

	var receipt models.Receipt
	assert.NoError(t, db.Where("reservation_id = ?", 42).First(&receipt).Error)
	assert.True(t, receipt.EmailSent)
	assert.NotNil(t, receipt.EmailSentDate)
}

func TestSendReceiptEmailDeliveryFailureIsRetrySafe(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeMailer{fail: true}
	r := setupReceiptRouter(t, db, mailer)

	seedReservation(t, db, 42, "paid", 150)
	assert.Equal(t, http.StatusOK, generateReceipt(t, r, 42).Code)

	payload := map[string]interface{}{"reservation_id": 42}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/receipts/send", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// email_sent stays false so the call can be retried.
	var receipt models.Receipt
	assert.NoError(t, db.Where("reservation_id = ?", 42).First(&receipt).Error)
	assert.False(t, receipt.EmailSent)

	// Retry after the transport recovers.
	mailer.fail = false
	req, _ = http.NewRequest("POST", "/api/receipts/send", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSendReceiptRequiresIssuedReceipt(t *testing.T) {
	db := setupTestDB(t)
	r := setupReceiptRouter(t, db, &fakeMailer{})

	seedReservation(t, db, 9, "paid", 100)

	payload := map[string]interface{}{"reservation_id": 9}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/receipts/send", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
