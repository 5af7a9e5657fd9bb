package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"collabhub/internal/model"
)

// IProjectRepository defines project persistence
type IProjectRepository interface {
	Create(ctx context.Context, project *model.Project) (*model.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	AppendComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (int64, error)
}

// ProjectRepository implements project persistence on MongoDB
type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) IProjectRepository {
	return &ProjectRepository{collection: db.Collection("projects")}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	project.CreatedAt = time.Now()
	if project.Comments == nil {
		project.Comments = []model.Comment{}
	}
	res, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		project.ID = oid
	}
	return project, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	var project *model.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AppendComment pushes a comment onto the project's embedded array in a
// single conditional update. Concurrent appends to the same project are
// serialized by the store; there is no read-modify-write. A zero modified
// count means the project vanished, which the service reports as not found.
func (r *ProjectRepository) AppendComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (int64, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
