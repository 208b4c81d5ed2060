package newsletter

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ngo-portal/database"
	"ngo-portal/internal/domain/newsletter"
)

// POST /api/newsletter/subscribe
func Subscribe(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing or invalid email"})
		return
	}

	var existing newsletter.Subscriber
	err := database.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		if !existing.Active {
			existing.Active = true
			existing.UnsubscribedAt = nil
			database.DB.Save(&existing)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"email": existing.Email}})
		return
	}

	sub := newsletter.Subscriber{Email: input.Email, Name: input.Name, Active: true}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to subscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"email": sub.Email}})
}

// POST /api/newsletter/unsubscribe
func Unsubscribe(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing or invalid email"})
		return
	}

	now := time.Now()
	res := database.DB.Model(&newsletter.Subscriber{}).
		Where("email = ? AND active = ?", input.Email, true).
		Updates(map[string]interface{}{"active": false, "unsubscribed_at": &now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to unsubscribe"})
		return
	}
	// Do not expose whether the email was subscribed.
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/admin/newsletter
func ListSubscribers(c *gin.Context) {
	var subs []newsletter.Subscriber
	if err := database.DB.Where("active = ?", true).Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load subscribers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}
