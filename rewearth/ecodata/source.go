package ecodata

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound reports that no reference record matched the query.
var ErrNotFound = errors.New("eco-data not found")

// Source is the read-only backing dataset. The pattern is a regular
// expression already escaped by the caller; matching is case-insensitive.
type Source interface {
	FindByPattern(ctx context.Context, pattern string) (*Record, error)
	ItemNames(ctx context.Context) ([]string, error)
}

type mongoSource struct {
	coll *mongo.Collection
}

// NewMongoSource wraps the reference collection. Documents are keyed by
// ItemName, matching the upstream dataset's shape.
func NewMongoSource(client *mongo.Client, database, collection string) Source {
	return &mongoSource{coll: client.Database(database).Collection(collection)}
}

func (s *mongoSource) FindByPattern(ctx context.Context, pattern string) (*Record, error) {
	filter := bson.M{"ItemName": primitive.Regex{Pattern: pattern, Options: "i"}}

	var record Record
	err := s.coll.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query eco-data: %w", err)
	}
	return &record, nil
}

func (s *mongoSource) ItemNames(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "ItemName", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list eco-data item names: %w", err)
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
