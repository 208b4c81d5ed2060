package donations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ngo-portal/database"
	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
)

// POST /api/donations — create the pending donation intent the payment
// order endpoint will reference.
func CreateDonation(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Amount  int64  `json:"amount" binding:"required"`
		Purpose string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Amount must be positive"})
		return
	}

	d := donations.Donation{
		DonorName: input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		AmountINR: input.Amount,
		Currency:  memberships.Currency,
		Purpose:   input.Purpose,
		Status:    donations.StatusPending,
	}
	if err := database.DB.Create(&d).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"donationId": d.ID,
		"amount":     d.AmountINR,
		"currency":   d.Currency,
	}})
}

// GET /api/admin/donations
func ListDonations(c *gin.Context) {
	var items []donations.Donation
	q := database.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}
