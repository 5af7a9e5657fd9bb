package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the privilege tier of a user.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleEmployee     Role = "employee"
)

// IsAdmin reports whether the role is one of the two admin tiers.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleCompanyAdmin
}

// User is a member of the platform. Admins carry the sentinel
// primitive.NilObjectID company binding; employees must reference a company.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Role      Role               `bson:"role" json:"role"`
	CompanyID primitive.ObjectID `bson:"companyId,omitempty" json:"companyId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserResponse is the wire representation of a user (hex ids).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts a User to its wire representation.
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if !u.CompanyID.IsZero() {
		resp.CompanyID = u.CompanyID.Hex()
	}
	return resp
}

// CreateCompanyAdminRequest creates a company_admin; the company binding is
// forced to the sentinel regardless of input.
type CreateCompanyAdminRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreateEmployeeRequest creates an employee bound to a company. The optional
// role field exists for wire compatibility and may only carry "employee".
type CreateEmployeeRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      Role   `json:"role" binding:"omitempty,oneof=employee"`
	CompanyID string `json:"company_id" binding:"required"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	Name  *string `json:"name" binding:"omitempty"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *Role   `json:"role" binding:"omitempty,oneof=super_admin company_admin employee"`
}
