package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/services"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type PolicyController struct {
	DB *gorm.DB
}

func NewPolicyController(db *gorm.DB) *PolicyController {
	return &PolicyController{DB: db}
}

// CreatePolicy registers a cancellation policy.
func (pc *PolicyController) CreatePolicy(c *gin.Context) {
	type request struct {
		Name              string `json:"name" binding:"required"`
		CancellationHours *int   `json:"cancellation_hours" binding:"required,gte=0"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	policy := models.Policy{Name: req.Name, CancellationHours: *req.CancellationHours}
	if err := pc.DB.Create(&policy).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Policy created", policy)
}

// GetAllPolicies lists every policy.
func (pc *PolicyController) GetAllPolicies(c *gin.Context) {
	var policies []models.Policy
	if err := pc.DB.Find(&policies).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of policies", policies)
}

// UpdatePolicy edits a policy. Changing the cancellation window while
// reservations reference the policy would silently re-date their refund
// terms, so that case is refused with a conflict.
func (pc *PolicyController) UpdatePolicy(c *gin.Context) {
	idStr := c.Param("policy_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type request struct {
		Name              string `json:"name"`
		CancellationHours *int   `json:"cancellation_hours"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var policy models.Policy
	if err := pc.DB.First(&policy, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.CancellationHours != nil && *req.CancellationHours != policy.CancellationHours {
		var count int64
		if err := pc.DB.Model(&models.Reservation{}).Where("policy_id = ?", policy.ID).Count(&count).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		if count > 0 {
			respondServiceError(c, services.ErrPolicyInUse)
			return
		}
		policy.CancellationHours = *req.CancellationHours
	}
	if req.Name != "" {
		policy.Name = req.Name
	}

	if err := pc.DB.Save(&policy).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Policy updated", policy)
}
