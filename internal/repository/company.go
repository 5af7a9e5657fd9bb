package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"collabhub/internal/model"
)

// ICompanyRepository defines company persistence
type ICompanyRepository interface {
	Create(ctx context.Context, company *model.Company) (*model.Company, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Company, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// CompanyRepository implements company persistence on MongoDB
type CompanyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) ICompanyRepository {
	return &CompanyRepository{collection: db.Collection("companies")}
}

func (r *CompanyRepository) Create(ctx context.Context, company *model.Company) (*model.Company, error) {
	company.CreatedAt = time.Now()
	if company.Employees == nil {
		company.Employees = []primitive.ObjectID{}
	}
	res, err := r.collection.InsertOne(ctx, company)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		company.ID = oid
	}
	return company, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Company, error) {
	var company *model.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return company, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
