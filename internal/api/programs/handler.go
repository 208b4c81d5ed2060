package programs

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"ngo-portal/database"
	"ngo-portal/internal/domain/programs"
)

// GET /api/programs
func ListPrograms(c *gin.Context) {
	var items []programs.Program
	if err := database.DB.Where("active = ?", true).Order("name").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load programs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// GET /api/programs/:slug
func GetProgram(c *gin.Context) {
	var p programs.Program
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&p).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Program not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

type programInput struct {
	Name    string         `json:"name" binding:"required"`
	Slug    string         `json:"slug"`
	Summary string         `json:"summary"`
	Content datatypes.JSON `json:"content"`
	Active  *bool          `json:"active"`
}

// POST /api/admin/programs
func CreateProgram(c *gin.Context) {
	var input programInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = input.Name
	}

	p := programs.Program{
		Name:    input.Name,
		Slug:    strings.ToLower(strings.ReplaceAll(strings.TrimSpace(slug), " ", "-")),
		Summary: input.Summary,
		Content: input.Content,
		Active:  true,
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := database.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Slug may already exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// PUT /api/admin/programs/:id
func UpdateProgram(c *gin.Context) {
	var p programs.Program
	if err := database.DB.First(&p, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Program not found"})
		return
	}

	var input programInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	p.Name = input.Name
	p.Summary = input.Summary
	if input.Slug != "" {
		p.Slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input.Slug), " ", "-"))
	}
	if input.Content != nil {
		p.Content = input.Content
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := database.DB.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update program"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// DELETE /api/admin/programs/:id
func DeleteProgram(c *gin.Context) {
	if err := database.DB.Delete(&programs.Program{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete program"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
