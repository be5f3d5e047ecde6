package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/controllers"
	"github.com/yeremiapane/hotel-management-app/models"
)

func setupRefundRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(stubOperator("payment_manager"))
	refundCtrl := controllers.NewRefundController(db)
	r.GET("/api/refunds/requests", refundCtrl.GetRefundRequests)
	r.POST("/api/refunds/process", refundCtrl.ProcessRefund)
	return r
}

// openRefund puts a paid reservation into the requested state.
func openRefund(t *testing.T, db *gorm.DB, id uint, amount float64, reason string) {
	seedReservation(t, db, id, "paid", amount)
	err := db.Model(&models.Reservation{}).Where("id = ?", id).Updates(map[string]interface{}{
		"refund_status": "requested",
		"refund_amount": amount,
		"refund_reason": reason,
	}).Error
	assert.NoError(t, err)
}

func processRefund(t *testing.T, r *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/refunds/process", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetRefundRequests(t *testing.T) {
	db := setupTestDB(t)
	r := setupRefundRouter(db)

	openRefund(t, db, 1, 100, "change of plans")
	seedReservation(t, db, 2, "paid", 200) // refund_status none, not listed

	req, _ := http.NewRequest("GET", "/api/refunds/requests", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
	row := data[0].(map[string]interface{})
	assert.Equal(t, "requested", row["refund_status"])
	// Check-in is 72h away with a 48h policy window, so still eligible.
	assert.Equal(t, true, row["refund_eligible"])
}

func TestProcessRefundRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupRefundRouter(db)

	openRefund(t, db, 7, 150, "illness")

	w := processRefund(t, r, map[string]interface{}{
		"reservation_id":   7,
		"action":           "rejected",
		"rejection_reason": "non-refundable fare",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var reservation models.Reservation
	assert.NoError(t, db.First(&reservation, 7).Error)
	assert.Equal(t, "rejected", reservation.RefundStatus)

	var refund models.Refund
	assert.NoError(t, db.Where("reservation_id = ?", 7).First(&refund).Error)
	assert.Equal(t, "rejected", refund.Status)
	assert.Equal(t, "non-refundable fare", refund.RejectionReason)
	assert.Equal(t, 150.0, refund.Amount)
	assert.NotNil(t, refund.ProcessedDate)
}

func TestProcessRefundApproved(t *testing.T) {
	db := setupTestDB(t)
	r := setupRefundRouter(db)

	openRefund(t, db, 11, 220, "trip cancelled")

	w := processRefund(t, r, map[string]interface{}{
		"reservation_id": 11,
		"action":         "approved",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var refund models.Refund
	assert.NoError(t, db.Where("reservation_id = ?", 11).First(&refund).Error)
	assert.Equal(t, "approved", refund.Status)
	assert.Empty(t, refund.RejectionReason)
}

func TestProcessRefundGuardsDoubleProcessing(t *testing.T) {
	db := setupTestDB(t)
	r := setupRefundRouter(db)

	openRefund(t, db, 13, 90, "duplicate booking")

	w := processRefund(t, r, map[string]interface{}{
		"reservation_id": 13,
		"action":         "approved",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// A second adjudication finds no requested refund and writes nothing.
	w = processRefund(t, r, map[string]interface{}{
		"reservation_id":   13,
		"action":           "rejected",
		"rejection_reason": "should not stick",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var refund models.Refund
	assert.NoError(t, db.Where("reservation_id = ?", 13).First(&refund).Error)
	assert.Equal(t, "approved", refund.Status)
	assert.Empty(t, refund.RejectionReason)
}

func TestProcessRefundInvalidAction(t *testing.T) {
	db := setupTestDB(t)
	r := setupRefundRouter(db)

	openRefund(t, db, 17, 75, "late arrival")

	w := processRefund(t, r, map[string]interface{}{
		"reservation_id": 17,
		"action":         "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reservation models.Reservation
	assert.NoError(t, db.First(&reservation, 17).Error)
	assert.Equal(t, "requested", reservation.RefundStatus)
}

func TestProcessRefundNeverRequested(t *testing.T) {
	db := setupTestDB(t)
	r := setupRefundRouter(db)

	seedReservation(t, db, 19, "paid", 100)

	w := processRefund(t, r, map[string]interface{}{
		"reservation_id": 19,
		"action":         "approved",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
