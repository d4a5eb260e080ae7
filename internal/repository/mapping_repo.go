package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CO-PO-Mapping-Backend/internal/model"
)

// MappingRepository stores reviewed CO-PO mapping records in bulk and
// serves the per-subject mapping query.
type MappingRepository struct {
	col *mongo.Collection
}

func NewMappingRepository(db *mongo.Database) *MappingRepository {
	return &MappingRepository{col: db.Collection(mappingCollection)}
}

// InsertMany inserts the records in order and returns the generated ids as
// hex strings. An empty input yields an empty id list, not an error. The
// insert is not transactional; a failure mid-batch leaves earlier records
// in place.
func (r *MappingRepository) InsertMany(ctx context.Context, mappings []model.COPOMapping) ([]string, error) {
	if len(mappings) == 0 {
		return []string{}, nil
	}

	docs := make([]interface{}, len(mappings))
	for i, m := range mappings {
		docs[i] = m
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("inserting %d mappings: %w", len(mappings), err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID).Hex())
	}
	return ids, nil
}

// FindBySubject returns mappings in whatever order the store yields them;
// callers must not rely on a particular ordering.
func (r *MappingRepository) FindBySubject(ctx context.Context, subject string) ([]model.COPOMapping, error) {
	cur, err := r.col.Find(ctx, bson.M{"subject": subject})
	if err != nil {
		return nil, fmt.Errorf("querying mappings for %q: %w", subject, err)
	}
	defer cur.Close(ctx)

	var mappings []model.COPOMapping
	if err := cur.All(ctx, &mappings); err != nil {
		return nil, fmt.Errorf("decoding mappings for %q: %w", subject, err)
	}
	return mappings, nil
}
