package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CO-PO-Mapping-Backend/internal/model"
)

// SubjectRepository stores CO catalogues, one document per subject
// submission. The exam evaluation route reads them back by subject name.
type SubjectRepository struct {
	col *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) *SubjectRepository {
	return &SubjectRepository{col: db.Collection(subjectCollection)}
}

func (r *SubjectRepository) Insert(ctx context.Context, details model.CourseDetails) (string, error) {
	res, err := r.col.InsertOne(ctx, details)
	if err != nil {
		return "", fmt.Errorf("inserting course details: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *SubjectRepository) FindBySubject(ctx context.Context, subject string) (*model.CourseDetails, error) {
	var details model.CourseDetails
	err := r.col.FindOne(ctx, bson.M{"subject": subject}).Decode(&details)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up subject %q: %w", subject, err)
	}
	return &details, nil
}
