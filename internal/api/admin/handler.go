package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ngo-portal/database"
	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/domain/newsletter"
)

type AdminMembership struct {
	ID           uint   `json:"id"`
	ReferenceID  string `json:"reference_id"`
	AudienceType string `json:"audience_type"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AmountINR    int64  `json:"amount_inr"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type AdminStats struct {
	TotalMembers       int            `json:"total_members"`
	MembersPerAudience map[string]int `json:"members_per_audience"`
	TotalDonations     int            `json:"total_donations"`
	TotalRevenue       int64          `json:"total_revenue_inr"`
	RecentRevenue      int64          `json:"recent_revenue_inr"`
	Subscribers        int            `json:"newsletter_subscribers"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalMembers, totalDonations, subscribers int64
	database.DB.Model(&memberships.Membership{}).Count(&totalMembers)
	database.DB.Model(&donations.Donation{}).Where("status = ?", donations.StatusCompleted).Count(&totalDonations)
	database.DB.Model(&newsletter.Subscriber{}).Where("active = ?", true).Count(&subscribers)

	var memberRevenue, donationRevenue int64
	database.DB.Model(&memberships.Membership{}).
		Select("COALESCE(SUM(amount_inr), 0)").Scan(&memberRevenue)
	database.DB.Model(&donations.Donation{}).
		Where("status = ?", donations.StatusCompleted).
		Select("COALESCE(SUM(amount_inr), 0)").Scan(&donationRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	var recentMembers, recentDonations int64
	database.DB.Model(&memberships.Membership{}).
		Where("created_at >= ?", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_inr), 0)").Scan(&recentMembers)
	database.DB.Model(&donations.Donation{}).
		Where("status = ? AND updated_at >= ?", donations.StatusCompleted, thirtyDaysAgo).
		Select("COALESCE(SUM(amount_inr), 0)").Scan(&recentDonations)

	type audienceCount struct {
		AudienceType string
		Count        int
	}
	var counts []audienceCount
	database.DB.
		Table("memberships").
		Select("audience_type, COUNT(id) as count").
		Group("audience_type").
		Scan(&counts)

	stats.TotalMembers = int(totalMembers)
	stats.TotalDonations = int(totalDonations)
	stats.Subscribers = int(subscribers)
	stats.TotalRevenue = memberRevenue + donationRevenue
	stats.RecentRevenue = recentMembers + recentDonations
	stats.MembersPerAudience = map[string]int{}
	for _, a := range counts {
		stats.MembersPerAudience[a.AudienceType] = a.Count
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func ListAllMemberships(c *gin.Context) {
	var members []memberships.Membership
	q := database.DB.Order("created_at DESC")
	if audience := c.Query("audience"); audience != "" {
		q = q.Where("audience_type = ?", audience)
	}
	if err := q.Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load memberships"})
		return
	}

	var result []AdminMembership
	for _, m := range members {
		result = append(result, AdminMembership{
			ID:           m.ID,
			ReferenceID:  m.ReferenceID,
			AudienceType: m.AudienceType,
			Name:         m.Name,
			Email:        m.Email,
			Phone:        m.Phone,
			AmountINR:    m.AmountINR,
			Status:       m.Status,
			CreatedAt:    m.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func GetMembershipDetails(c *gin.Context) {
	var m memberships.Membership
	if err := database.DB.First(&m, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Membership not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": m})
}
