package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JesloDev/e-library/internal/core/domain"
)

const collectionInvites = "registration_links"

// InviteRepository implements ports.InviteRepository using MongoDB.
type InviteRepository struct {
	col *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{col: db.Collection(collectionInvites)}
}

type mongoInvite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

func (m mongoInvite) toDomain() *domain.RegistrationLink {
	return &domain.RegistrationLink{
		ID:        m.ID.Hex(),
		Token:     m.Token,
		CreatedAt: m.CreatedAt.UTC(),
		ExpiresAt: m.ExpiresAt.UTC(),
	}
}

func (r *InviteRepository) Create(ctx context.Context, link *domain.RegistrationLink) (*domain.RegistrationLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoInvite{
		Token:     link.Token,
		CreatedAt: link.CreatedAt,
		ExpiresAt: link.ExpiresAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert registration link: %w", err)
	}

	created := *link
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *InviteRepository) FindByToken(ctx context.Context, token string) (*domain.RegistrationLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInvite
	if err := r.col.FindOne(ctx, bson.M{"token": token}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("find registration link: %w", err)
	}
	return mi.toDomain(), nil
}

// List returns outstanding links, newest first.
func (r *InviteRepository) List(ctx context.Context) ([]*domain.RegistrationLink, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list registration links: %w", err)
	}
	defer cur.Close(ctx)

	links := []*domain.RegistrationLink{}
	for cur.Next(ctx) {
		var mi mongoInvite
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode registration link: %w", err)
		}
		links = append(links, mi.toDomain())
	}
	return links, cur.Err()
}

func (r *InviteRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInviteNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete registration link: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

// EnsureIndexes creates the token lookup index.
func (r *InviteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
