package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/utils"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// CreateRoom registers a new room.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	type request struct {
		Type  string `json:"type" binding:"required"`
		Floor int    `json:"floor" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room := models.Room{Type: req.Type, Floor: req.Floor, Code: req.Code}
	if err := rc.DB.Create(&room).Error; err != nil {
		utils.ErrorLogger.Printf("store error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errStoreFailure)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Room created", room)
}

// GetAllRooms lists every room.
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	var rooms []models.Room
	if err := rc.DB.Find(&rooms).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

// SearchRooms lists rooms with no reservation overlapping the given
// date range.
func (rc *RoomController) SearchRooms(c *gin.Context) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date and end_date are required"))
		return
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid start_date"))
		return
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid end_date"))
		return
	}

	var rooms []models.Room
	subQuery := rc.DB.Model(&models.Reservation{}).
		Select("room_id").
		Where("start_date <= ? AND end_date >= ?", end, start)
	if err := rc.DB.Where("id NOT IN (?)", subQuery).Find(&rooms).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available rooms", rooms)
}
