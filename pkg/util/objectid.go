package util

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts an opaque hex identifier to a store key. Returns
// primitive.NilObjectID and an error when the string is not a valid id.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id format: %w", err)
	}
	return objID, nil
}
