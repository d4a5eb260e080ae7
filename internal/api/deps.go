package api

import (
	"context"

	"CO-PO-Mapping-Backend/internal/model"
)

// Handler dependencies are declared as interfaces so tests can substitute
// fakes for the AI client and the document store.

type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

type UserStore interface {
	Insert(ctx context.Context, user model.User) (string, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type MappingStore interface {
	InsertMany(ctx context.Context, mappings []model.COPOMapping) ([]string, error)
	FindBySubject(ctx context.Context, subject string) ([]model.COPOMapping, error)
}

type SubjectStore interface {
	Insert(ctx context.Context, details model.CourseDetails) (string, error)
	FindBySubject(ctx context.Context, subject string) (*model.CourseDetails, error)
}

type SyllabusStore interface {
	Insert(ctx context.Context, entry model.SyllabusEntry) (string, error)
}

type Extractor interface {
	Extract(data []byte) ([]model.ExtractedQuestion, error)
}
