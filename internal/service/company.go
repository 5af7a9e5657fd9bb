package service

import (
	"context"
	"fmt"

	"collabhub/internal/apperror"
	"collabhub/internal/authz"
	"collabhub/internal/model"
	"collabhub/internal/repository"
	"collabhub/pkg/util"
)

// CompanyService handles tenant lifecycle.
type CompanyService struct {
	repo   repository.ICompanyRepository
	policy *authz.Policy
}

// NewCompanyService creates a new company service
func NewCompanyService(repo repository.ICompanyRepository, policy *authz.Policy) *CompanyService {
	return &CompanyService{repo: repo, policy: policy}
}

// Create creates a company. Admin roles only.
func (s *CompanyService) Create(ctx context.Context, actor *model.User, req *model.CreateCompanyRequest) (*model.Company, error) {
	if err := s.policy.Authorize(actor.Role, authz.OpCreateCompany); err != nil {
		return nil, err
	}

	company, err := s.repo.Create(ctx, &model.Company{Name: req.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetByID fetches a company by id.
func (s *CompanyService) GetByID(ctx context.Context, id string) (*model.Company, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperror.ErrInvalidID
	}
	company, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	if company == nil {
		return nil, apperror.NotFound("Company")
	}
	return company, nil
}

// Delete removes a company. Members are not cascaded; their companyId
// references go stale, a documented limitation.
func (s *CompanyService) Delete(ctx context.Context, actor *model.User, id string) error {
	if err := s.policy.Authorize(actor.Role, authz.OpDeleteCompany); err != nil {
		return err
	}

	objID, err := util.ParseObjectID(id)
	if err != nil {
		return apperror.ErrInvalidID
	}

	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if deleted == 0 {
		return apperror.NotFound("Company")
	}
	return nil
}
