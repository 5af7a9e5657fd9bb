package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment lives embedded in its parent project's comment array. It is
// append-only and never independently addressable.
type Comment struct {
	ProjectID primitive.ObjectID `bson:"projectId" json:"projectId"`
	AuthorID  primitive.ObjectID `bson:"authorId" json:"authorId"`
	Content   string             `bson:"content" json:"content"`
}

// Project belongs to exactly one company and one owning employee. Company and
// owner are immutable after creation.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CompanyID   primitive.ObjectID `bson:"companyId" json:"companyId"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CommentResponse is the wire representation of an embedded comment.
type CommentResponse struct {
	ProjectID string `json:"projectId"`
	AuthorID  string `json:"authorId"`
	Content   string `json:"content"`
}

// ProjectResponse is the wire representation of a project.
type ProjectResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CompanyID   string            `json:"companyId"`
	OwnerID     string            `json:"ownerId"`
	Comments    []CommentResponse `json:"comments"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ToResponse converts a Project to its wire representation.
func (p *Project) ToResponse() ProjectResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentResponse{
			ProjectID: c.ProjectID.Hex(),
			AuthorID:  c.AuthorID.Hex(),
			Content:   c.Content,
		})
	}
	return ProjectResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		CompanyID:   p.CompanyID.Hex(),
		OwnerID:     p.OwnerID.Hex(),
		Comments:    comments,
		CreatedAt:   p.CreatedAt,
	}
}

// CreateProjectRequest creates a project; company_id must match the creating
// employee's company binding.
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	CompanyID   string `json:"company_id" binding:"required"`
}

// UpdateProjectRequest is a partial update; nil fields are left untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty"`
	Description *string `json:"description" binding:"omitempty"`
}

// CreateCommentRequest appends a comment to a project.
type CreateCommentRequest struct {
	AuthorID string `json:"employee_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
}
