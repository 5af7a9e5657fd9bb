package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/middleware"
	"collabhub/internal/model"
	"collabhub/internal/service"
)

// ProjectHandler handles project and comment endpoints
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Project created", project.ToResponse()))
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", project.ToResponse()))
}

// Update handles PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req model.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Project updated", project.ToResponse()))
}

// Delete handles DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Project deleted", nil))
}

// AddComment handles POST /api/projects/:id/comments
func (h *ProjectHandler) AddComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.projects.AddComment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.logger.Warn("add comment failed",
			zap.String("project_id", c.Param("id")),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Comment added", model.CommentResponse{
		ProjectID: comment.ProjectID.Hex(),
		AuthorID:  comment.AuthorID.Hex(),
		Content:   comment.Content,
	}))
}
