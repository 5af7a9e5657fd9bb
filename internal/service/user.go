package service

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"collabhub/internal/apperror"
	"collabhub/internal/authz"
	"collabhub/internal/config"
	"collabhub/internal/model"
	"collabhub/internal/repository"
	"collabhub/pkg/util"
)

// UserService handles identity resolution, provisioning and user mutations.
type UserService struct {
	repo   repository.IUserRepository
	policy *authz.Policy
	cfg    *config.Config
	logger *zap.Logger

	// provisionMu is the single-writer gate for the check-then-create in
	// ProvisionSuperAdmin. The unique partial index on the users collection
	// covers provisioners in other processes.
	provisionMu sync.Mutex
}

// NewUserService creates a new user service
func NewUserService(repo repository.IUserRepository, policy *authz.Policy, cfg *config.Config, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, policy: policy, cfg: cfg, logger: logger}
}

// GetByID resolves an opaque user identifier to its record. Every request
// re-resolves identity, so role changes take effect on the next request.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User")
	}
	return user, nil
}

// ProvisionSuperAdmin creates the platform super admin if none exists.
// Idempotent and safe to call repeatedly or concurrently; returns the
// super admin and whether this call created it.
func (s *UserService) ProvisionSuperAdmin(ctx context.Context) (*model.User, bool, error) {
	s.provisionMu.Lock()
	defer s.provisionMu.Unlock()

	existing, err := s.repo.FindByRole(ctx, model.RoleSuperAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up super admin: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	admin := &model.User{
		Name:      s.cfg.SuperAdmin.Name,
		Email:     s.cfg.SuperAdmin.Email,
		Role:      model.RoleSuperAdmin,
		CompanyID: primitive.NilObjectID,
	}
	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Another process won the race; treat it as already provisioned.
			winner, lookupErr := s.repo.FindByRole(ctx, model.RoleSuperAdmin)
			if lookupErr == nil && winner != nil {
				return winner, false, nil
			}
			return nil, false, apperror.ErrConflict
		}
		return nil, false, fmt.Errorf("failed to create super admin: %w", err)
	}

	s.logger.Info("super admin provisioned", zap.String("user_id", created.ID.Hex()))
	return created, true, nil
}

// CreateCompanyAdmin creates a company_admin. Only the super admin may do
// this; the new admin gets the sentinel company binding.
func (s *UserService) CreateCompanyAdmin(ctx context.Context, actor *model.User, req *model.CreateCompanyAdminRequest) (*model.User, error) {
	if err := s.policy.Authorize(actor.Role, authz.OpCreateCompanyAdmin); err != nil {
		return nil, err
	}

	admin := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      model.RoleCompanyAdmin,
		CompanyID: primitive.NilObjectID,
	}
	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return nil, fmt.Errorf("failed to create company admin: %w", err)
	}
	return created, nil
}

// CreateEmployee creates an employee bound to a company.
func (s *UserService) CreateEmployee(ctx context.Context, actor *model.User, req *model.CreateEmployeeRequest) (*model.User, error) {
	if err := s.policy.Authorize(actor.Role, authz.OpCreateEmployee); err != nil {
		return nil, err
	}

	companyID, err := util.ParseObjectID(req.CompanyID)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}

	employee := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      model.RoleEmployee,
		CompanyID: companyID,
	}
	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// UpdateEmployee applies a partial update to an employee. Admin accounts are
// never updatable through this path.
func (s *UserService) UpdateEmployee(ctx context.Context, id string, req *model.UpdateEmployeeRequest) (*model.User, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}

	target, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if target == nil {
		return nil, apperror.NotFound("Employee")
	}
	if target.Role.IsAdmin() {
		return nil, apperror.Forbidden("Cannot update super_admin or company_admin")
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return target, nil
	}

	matched, err := s.repo.UpdateFields(ctx, objID, fields)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// The unique partial index rejects a second super_admin.
			return nil, apperror.ErrConflict
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	if matched == 0 {
		// Deleted between the presence check and the write; benign race.
		return nil, apperror.NotFound("Employee")
	}

	updated, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload employee: %w", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("Employee")
	}
	return updated, nil
}

// DeleteEmployee removes an employee by id.
func (s *UserService) DeleteEmployee(ctx context.Context, actor *model.User, id string) error {
	if err := s.policy.Authorize(actor.Role, authz.OpDeleteEmployee); err != nil {
		return err
	}

	objID, err := util.ParseObjectID(id)
	if err != nil {
		return apperror.ErrInvalidID
	}

	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if deleted == 0 {
		return apperror.NotFound("Employee")
	}
	return nil
}
