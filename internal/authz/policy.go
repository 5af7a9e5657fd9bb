package authz

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"collabhub/internal/apperror"
	"collabhub/internal/model"
)

// Operation names a gated mutation. Operations absent from the policy table
// (project update/delete, comment append) are intentionally ungated; see
// DESIGN.md.
type Operation string

const (
	OpCreateCompany      Operation = "company:create"
	OpDeleteCompany      Operation = "company:delete"
	OpCreateCompanyAdmin Operation = "company_admin:create"
	OpCreateEmployee     Operation = "employee:create"
	OpDeleteEmployee     Operation = "employee:delete"
	OpCreateProject      Operation = "project:create"
)

// Role/operation matching only; no resource attributes. The tenancy check on
// project creation lives in the project service, not here.
const modelText = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

// table is the single auditable source of who may do what.
var table = map[Operation][]model.Role{
	OpCreateCompany:      {model.RoleSuperAdmin, model.RoleCompanyAdmin},
	OpDeleteCompany:      {model.RoleSuperAdmin, model.RoleCompanyAdmin},
	OpCreateCompanyAdmin: {model.RoleSuperAdmin},
	OpCreateEmployee:     {model.RoleSuperAdmin, model.RoleCompanyAdmin},
	OpDeleteEmployee:     {model.RoleSuperAdmin, model.RoleCompanyAdmin},
	OpCreateProject:      {model.RoleEmployee},
}

// Policy evaluates role-scoped authorization decisions. The underlying
// enforcer is loaded once at construction and read-only afterwards.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds the enforcer from the in-memory model and policy table.
func NewPolicy() (*Policy, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authz model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for op, roles := range table {
		for _, role := range roles {
			if _, err := enforcer.AddPolicy(string(role), string(op)); err != nil {
				return nil, fmt.Errorf("failed to load policy %s/%s: %w", role, op, err)
			}
		}
	}

	return &Policy{enforcer: enforcer}, nil
}

// Authorize returns nil when the role may perform the operation and
// apperror.ErrForbidden otherwise.
func (p *Policy) Authorize(role model.Role, op Operation) error {
	allowed, err := p.enforcer.Enforce(string(role), string(op))
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "authorization check failed", http.StatusInternalServerError)
	}
	if !allowed {
		return apperror.ErrForbidden
	}
	return nil
}
