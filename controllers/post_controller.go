package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"radiotrack/app"
	"radiotrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct{ *Srv }

func NewPostController(s *Srv) *PostController { return &PostController{Srv: s} }

// GET /api/posts?limit=
func (pc *PostController) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := pc.Repo.ListPosts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"posts": rows})
}

// POST /api/posts
func (pc *PostController) CreatePost(c *gin.Context) {
	emp := app.CurrentEmployee(c)
	if emp == nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "content is required"})
		return
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "content is required"})
		return
	}

	p := &models.Post{AuthorID: emp.ID, Content: content}
	if err := pc.Repo.CreatePost(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// DELETE /api/posts/:id, allowed for the author or a supervisor.
func (pc *PostController) DeletePost(c *gin.Context) {
	emp := app.CurrentEmployee(c)
	if emp == nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid post id"})
		return
	}

	post, err := pc.Repo.FindPostByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if post.AuthorID != emp.ID && emp.Rank() < models.RankAdmin {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	if _, err := pc.Repo.DeletePost(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
