package users

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/statewisejobs/statewise-jobs/internal/models"
)

// Repository defines persistence operations for identity records.
// GetByEmail expects an already-normalized email.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
}

// MongoRepository implements Repository using MongoDB. The unique index on
// email is the authority for duplicate registration: when two concurrent
// registrations race, the store rejects the loser.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a repository for the given collection and
// ensures the unique email index exists. The index is what rejects the
// loser of a concurrent duplicate registration, so failing to create it is
// a startup error, not a warning.
func NewMongoRepository(col *mongo.Collection) (*MongoRepository, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(context.Background(), idx); err != nil {
		return nil, fmt.Errorf("create unique email index: %w", err)
	}
	return &MongoRepository{col: col}, nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}
