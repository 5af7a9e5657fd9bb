package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a tenant boundary owning users by reference. Deleting a company
// does not cascade to its members; their companyId references go stale.
type Company struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	Employees []primitive.ObjectID `bson:"employees" json:"employees"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// CompanyResponse is the wire representation of a company.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Employees []string  `json:"employees"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts a Company to its wire representation.
func (c *Company) ToResponse() CompanyResponse {
	employees := make([]string, 0, len(c.Employees))
	for _, id := range c.Employees {
		employees = append(employees, id.Hex())
	}
	return CompanyResponse{
		ID:        c.ID.Hex(),
		Name:      c.Name,
		Employees: employees,
		CreatedAt: c.CreatedAt,
	}
}

// CreateCompanyRequest creates a company.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}
