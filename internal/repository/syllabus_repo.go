package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CO-PO-Mapping-Backend/internal/model"
)

type SyllabusRepository struct {
	col *mongo.Collection
}

func NewSyllabusRepository(db *mongo.Database) *SyllabusRepository {
	return &SyllabusRepository{col: db.Collection(syllabusCollection)}
}

func (r *SyllabusRepository) Insert(ctx context.Context, entry model.SyllabusEntry) (string, error) {
	res, err := r.col.InsertOne(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("inserting syllabus entry: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
