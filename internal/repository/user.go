package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"collabhub/internal/model"
)

// IUserRepository defines user persistence
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByRole(ctx context.Context, role model.Role) (*model.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// UserRepository implements user persistence on MongoDB
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) IUserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique partial index backing the
// single-super-admin invariant: at most one document may carry
// role == "super_admin", enforced by the store itself so concurrent
// provisioners cannot race past the in-process gate.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys: bson.D{{Key: "role", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"role": string(model.RoleSuperAdmin)}),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, idx)
	return err
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user *model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role model.Role) (*model.User, error) {
	var user *model.User
	err := r.collection.FindOne(ctx, bson.M{"role": role}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
