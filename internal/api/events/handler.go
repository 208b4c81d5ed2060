package events

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ngo-portal/database"
	"ngo-portal/internal/domain/events"
)

// GET /api/events
func ListUpcomingEvents(c *gin.Context) {
	var items []events.Event
	if err := database.DB.
		Where("starts_at > ?", time.Now()).
		Order("starts_at").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// POST /api/events/:id/register
func RegisterForEvent(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var event events.Event
	if err := database.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
		return
	}

	if event.Capacity > 0 {
		var count int64
		database.DB.Model(&events.Registration{}).Where("event_id = ?", event.ID).Count(&count)
		if count >= int64(event.Capacity) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "Event is full"})
			return
		}
	}

	reg := events.Registration{
		EventID: event.ID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
	}
	if err := database.DB.Create(&reg).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "You are already registered for this event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"registrationId": reg.ID}})
}

type eventInput struct {
	Title       string    `json:"title" binding:"required"`
	Slug        string    `json:"slug" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	Capacity    int       `json:"capacity"`
}

// POST /api/admin/events
func CreateEvent(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	event := events.Event{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Location:    input.Location,
		StartsAt:    input.StartsAt,
		Capacity:    input.Capacity,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Slug may already exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
}

// GET /api/admin/events/:id/registrations
func ListRegistrations(c *gin.Context) {
	var regs []events.Registration
	if err := database.DB.
		Where("event_id = ?", c.Param("id")).
		Order("created_at").
		Find(&regs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": regs})
}
