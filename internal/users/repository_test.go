package users

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The unique email index enforces registration uniqueness, so the
// constructor must refuse a collection it cannot index.
func TestNewMongoRepository_IndexFailureSurfaces(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// port 1 is never a mongod; server selection fails fast
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("client construction should not dial: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo, err := NewMongoRepository(client.Database("statewisejobs_test").Collection("users"))
	if err == nil {
		t.Fatalf("expected index creation against unreachable server to fail")
	}
	if repo != nil {
		t.Fatalf("expected nil repository on index failure")
	}
}
