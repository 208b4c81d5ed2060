package blog

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ngo-portal/database"
	"ngo-portal/internal/domain/blog"
)

// GET /api/blog
func ListPublishedPosts(c *gin.Context) {
	var posts []blog.Post
	if err := database.DB.
		Where("published = ?", true).
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": posts})
}

// GET /api/blog/:slug
func GetPost(c *gin.Context) {
	var post blog.Post
	if err := database.DB.
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

type postInput struct {
	Title         string `json:"title" binding:"required"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Body          string `json:"body"`
	CoverImageURL string `json:"cover_image_url"`
	Author        string `json:"author"`
	Published     bool   `json:"published"`
}

// POST /api/admin/blog
func CreatePost(c *gin.Context) {
	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	post := blog.Post{
		Title:         input.Title,
		Slug:          slugify(firstNonEmpty(input.Slug, input.Title)),
		Excerpt:       input.Excerpt,
		Body:          input.Body,
		CoverImageURL: input.CoverImageURL,
		Author:        input.Author,
		Published:     input.Published,
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Slug may already exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// PUT /api/admin/blog/:id
func UpdatePost(c *gin.Context) {
	var post blog.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post not found"})
		return
	}

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	wasPublished := post.Published
	post.Title = input.Title
	if input.Slug != "" {
		post.Slug = slugify(input.Slug)
	}
	post.Excerpt = input.Excerpt
	post.Body = input.Body
	post.CoverImageURL = input.CoverImageURL
	post.Author = input.Author
	post.Published = input.Published
	if post.Published && !wasPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := database.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// DELETE /api/admin/blog/:id
func DeletePost(c *gin.Context) {
	if err := database.DB.Delete(&blog.Post{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/admin/blog — drafts included.
func ListAllPosts(c *gin.Context) {
	var posts []blog.Post
	if err := database.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": posts})
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
