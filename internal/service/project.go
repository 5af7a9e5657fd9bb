package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"collabhub/internal/apperror"
	"collabhub/internal/authz"
	"collabhub/internal/broadcast"
	"collabhub/internal/model"
	"collabhub/internal/repository"
	"collabhub/pkg/util"
)

// ProjectService handles project lifecycle and the comment append and
// broadcast pipeline.
type ProjectService struct {
	repo     repository.IProjectRepository
	registry *broadcast.Registry
	policy   *authz.Policy
	logger   *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.IProjectRepository, registry *broadcast.Registry, policy *authz.Policy, logger *zap.Logger) *ProjectService {
	return &ProjectService{repo: repo, registry: registry, policy: policy, logger: logger}
}

// Create creates a project owned by the acting employee. The declared company
// must match the employee's own binding; cross-tenant creation is rejected
// before any write.
func (s *ProjectService) Create(ctx context.Context, actor *model.User, req *model.CreateProjectRequest) (*model.Project, error) {
	if err := s.policy.Authorize(actor.Role, authz.OpCreateProject); err != nil {
		return nil, err
	}

	companyID, err := util.ParseObjectID(req.CompanyID)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}
	if companyID != actor.CompanyID {
		return nil, apperror.Forbidden("Employee does not belong to the specified company")
	}

	project := &model.Project{
		Title:       req.Title,
		Description: req.Description,
		CompanyID:   companyID,
		OwnerID:     actor.ID,
	}
	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

// GetByID fetches a project by id.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}
	project, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, apperror.NotFound("Project")
	}
	return project, nil
}

// Update applies a partial update to title/description. Company and owner are
// immutable. No ownership check is applied here; see DESIGN.md.
func (s *ProjectService) Update(ctx context.Context, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("Project")
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return existing, nil
	}

	matched, err := s.repo.UpdateFields(ctx, objID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if matched == 0 {
		return nil, apperror.NotFound("Project")
	}

	updated, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Project")
	}
	return updated, nil
}

// Delete removes a project (and its embedded comments with it).
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return apperror.ErrInvalidID
	}

	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if deleted == 0 {
		return apperror.NotFound("Project")
	}
	return nil
}

// AddComment appends a comment to the project's log and fans it out to every
// live observer of that project. The append is a single conditional store
// update; a zero modified count means the project is gone and is reported as
// not found. Delivery is best-effort and never rolls back the stored comment.
func (s *ProjectService) AddComment(ctx context.Context, projectID string, req *model.CreateCommentRequest) (*model.Comment, error) {
	objID, err := util.ParseObjectID(projectID)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}
	authorID, err := util.ParseObjectID(req.AuthorID)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}

	comment := model.Comment{
		ProjectID: objID,
		AuthorID:  authorID,
		Content:   req.Content,
	}

	modified, err := s.repo.AppendComment(ctx, objID, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to append comment: %w", err)
	}
	if modified == 0 {
		return nil, apperror.NotFound("Project")
	}

	// Observers are registered under the canonical hex form, so broadcast
	// under it too; the raw path segment may differ in case.
	channel := objID.Hex()
	s.registry.Broadcast(channel, broadcast.Event{Content: comment.Content})
	s.logger.Debug("comment broadcast",
		zap.String("project_id", channel),
		zap.Int("observers", s.registry.Count(channel)),
	)
	return &comment, nil
}
