package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDatabase returns a database handle without dialing a server. The
// driver connects lazily, so constructors and wiring can be exercised
// offline.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("client setup: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})
	return client.Database("provisioning_test")
}

func TestNewProfileRepository_UsesProfilesCollection(t *testing.T) {
	repo := NewProfileRepository(newTestDatabase(t))
	if got := repo.col.Name(); got != "profiles" {
		t.Fatalf("expected profiles collection, got %q", got)
	}
}

func TestNewOperatorRepository_UsesOperatorsCollection(t *testing.T) {
	repo := NewOperatorRepository(newTestDatabase(t))
	if got := repo.col.Name(); got != "operators" {
		t.Fatalf("expected operators collection, got %q", got)
	}
}

func TestOperatorDoc_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	now := time.Now().UTC()
	doc := operatorDoc{
		ID:           oid,
		Username:     "alice",
		PasswordHash: "hashed",
		Role:         "operator",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	op := doc.toDomain()
	if op.ID != oid.Hex() {
		t.Errorf("id not hex-encoded: %q", op.ID)
	}
	if op.Username != "alice" || op.Role != "operator" {
		t.Errorf("fields not mapped: %+v", op)
	}
	if op.PasswordHash != "hashed" {
		t.Errorf("password hash not mapped")
	}
	if !op.CreatedAt.Equal(now) || !op.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not mapped: %+v", op)
	}
}
