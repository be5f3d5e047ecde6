package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/hotel-management-app/services"
	"github.com/yeremiapane/hotel-management-app/utils"
)

var ErrNoPermission = errors.New("you don't have permission to access this resource")

var errStoreFailure = errors.New("database error")

// respondServiceError maps a service error to the HTTP taxonomy:
// invalid input 400, not-found/not-eligible 404, conflict 409,
// anything else 500 with a generic message (internal detail is logged,
// never returned).
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPaymentStatus),
		errors.Is(err, services.ErrInvalidRefundAction):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrNotEligible),
		errors.Is(err, services.ErrReceiptNotIssued):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrPaymentFinal),
		errors.Is(err, services.ErrRefundAlreadyOpen),
		errors.Is(err, services.ErrPolicyInUse):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("store error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errStoreFailure)
	}
}

// operatorID extracts the authenticated operator's user id from the
// request context set by the auth middleware.
func operatorID(c *gin.Context) uint {
	idInterface, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	id, ok := idInterface.(uint)
	if !ok {
		return 0
	}
	return id
}
