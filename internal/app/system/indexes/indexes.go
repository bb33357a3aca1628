// internal/app/system/indexes/indexes.go

// Package indexes reconciles the MongoDB indexes the app relies on.
// EnsureAll is called at startup; every ensure step is idempotent so a
// restart against an already-indexed database is a no-op.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		coll    string
		indexes []mongo.IndexModel
	}{
		{"courses", []mongo.IndexModel{
			unique("name_ci"),
			asc("is_available"),
		}},
		{"groups", []mongo.IndexModel{
			unique("name_ci"),
			asc("teacher_id"),
			desc("created_at"),
		}},
		{"users", []mongo.IndexModel{
			unique("email"),
		}},
		{"students", []mongo.IndexModel{
			asc("group_name"),
		}},
		{"notifications", []mongo.IndexModel{
			desc("created_at"),
			asc("role_target"),
			asc("recipient"),
		}},
	}

	for _, s := range steps {
		if _, err := db.Collection(s.coll).Indexes().CreateMany(ctx, s.indexes); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func asc(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}

func desc(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: -1}}}
}

func unique(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
