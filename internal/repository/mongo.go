package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names kept as the original deployment created them.
const (
	userCollection     = "User Information"
	subjectCollection  = "Subject_information"
	syllabusCollection = "Syllabus Information"
	mappingCollection  = "CO_PO_Mapping"
)

var ErrNotFound = errors.New("document not found")

// Connect dials MongoDB and returns the database handle plus a shutdown
// function that closes the connection pool.
func Connect(uri, dbName string) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	shutdown := func() {
		disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelDisconnect()
		_ = client.Disconnect(disconnectCtx)
	}
	return client.Database(dbName), shutdown, nil
}
