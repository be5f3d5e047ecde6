package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/controllers"
	"github.com/yeremiapane/hotel-management-app/models"
)

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(stubOperator("receptionist"))
	reservationCtrl := controllers.NewReservationController(db)
	r.POST("/api/reservations", reservationCtrl.CreateReservation)
	r.GET("/api/reservations", reservationCtrl.GetAllReservations)
	r.DELETE("/api/reservations/:reservation_id", reservationCtrl.CancelReservation)
	r.POST("/api/reservations/:reservation_id/refund-request", reservationCtrl.RequestRefund)
	return r
}

func seedBookingFixtures(t *testing.T, db *gorm.DB) (models.Customer, models.Room, models.Policy) {
	customer := models.Customer{Name: "Nikos Ioannou", Email: "nikos@example.com"}
	assert.NoError(t, db.Create(&customer).Error)
	room := models.Room{Type: "suite", Floor: 3, Code: "S-301"}
	assert.NoError(t, db.Create(&room).Error)
	policy := models.Policy{Name: "Strict", CancellationHours: 72}
	assert.NoError(t, db.Create(&policy).Error)
	price := models.Price{Category: "suite", Amount: 200}
	assert.NoError(t, db.Create(&price).Error)
	return customer, room, policy
}

func TestCreateReservationDerivesAmount(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	customer, room, policy := seedBookingFixtures(t, db)

	start := time.Now().Add(14 * 24 * time.Hour).Format("2006-01-02")
	end := time.Now().Add(17 * 24 * time.Hour).Format("2006-01-02")
	payload := map[string]interface{}{
		"customer_id": customer.ID,
		"room_id":     room.ID,
		"policy_id":   policy.ID,
		"start_date":  start,
		"end_date":    end,
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/api/reservations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var reservation models.Reservation
	assert.NoError(t, db.Where("customer_id = ?", customer.ID).First(&reservation).Error)
	assert.Equal(t, "pending", reservation.PaymentStatus)
	assert.Equal(t, "none", reservation.RefundStatus)
	// 3 nights at 200 per night.
	assert.Equal(t, 600.0, reservation.PaymentAmount)
}

func TestCreateReservationRefusesOverlap(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	customer, room, policy := seedBookingFixtures(t, db)

	book := func(start, end string) *httptest.ResponseRecorder {
		payload := map[string]interface{}{
			"customer_id": customer.ID,
			"room_id":     room.ID,
			"policy_id":   policy.ID,
			"start_date":  start,
			"end_date":    end,
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", "/api/reservations", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	day := func(offset int) string {
		return time.Now().Add(time.Duration(offset) * 24 * time.Hour).Format("2006-01-02")
	}

	assert.Equal(t, http.StatusCreated, book(day(10), day(13)).Code)
	assert.Equal(t, http.StatusConflict, book(day(12), day(15)).Code)
	assert.Equal(t, http.StatusCreated, book(day(13), day(15)).Code)
}

func TestCancelReservation(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)

	pending := seedReservation(t, db, 21, "pending", 100)
	paid := seedReservation(t, db, 22, "paid", 100)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/reservations/%d", pending.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Reservation{}).Where("id = ?", pending.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Paid reservations go through the refund cycle, not deletion.
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/api/reservations/%d", paid.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestRefund(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)

	seedReservation(t, db, 31, "paid", 400)

	payload := map[string]interface{}{"reason": "flight cancelled"}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/reservations/31/refund-request", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reservation models.Reservation
	assert.NoError(t, db.First(&reservation, 31).Error)
	assert.Equal(t, "requested", reservation.RefundStatus)
	// Amount defaults to the full payment amount.
	assert.Equal(t, 400.0, reservation.RefundAmount)
	assert.Equal(t, "flight cancelled", reservation.RefundReason)

	// A second request while one is open is refused.
	req, _ = http.NewRequest("POST", "/api/reservations/31/refund-request", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestRefundRequiresPaidReservation(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)

	seedReservation(t, db, 33, "pending", 100)

	payload := map[string]interface{}{"reason": "changed my mind"}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/reservations/33/refund-request", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
