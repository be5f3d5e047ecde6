package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type PriceController struct {
	DB *gorm.DB
}

func NewPriceController(db *gorm.DB) *PriceController {
	return &PriceController{DB: db}
}

// CreatePrice registers a nightly rate for a room category.
func (pc *PriceController) CreatePrice(c *gin.Context) {
	type request struct {
		Category string  `json:"category" binding:"required"`
		Amount   float64 `json:"amount" binding:"required,gt=0"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	price := models.Price{Category: req.Category, Amount: req.Amount}
	if err := pc.DB.Create(&price).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Price created", price)
}

// GetAllPrices lists every price.
func (pc *PriceController) GetAllPrices(c *gin.Context) {
	var prices []models.Price
	if err := pc.DB.Find(&prices).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of prices", prices)
}
