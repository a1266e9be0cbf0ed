package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JesloDev/e-library/internal/core/domain"
)

const collectionBooks = "books"

// BookRepository implements ports.BookRepository using MongoDB.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

type mongoBook struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author"`
	Category    string             `bson:"category"`
	CoverURL    string             `bson:"cover_url"`
	DownloadURL string             `bson:"download_url"`
	Department  string             `bson:"department,omitempty"`
	CourseCode  string             `bson:"course_code,omitempty"`
	CourseTitle string             `bson:"course_title,omitempty"`
	Level       string             `bson:"level,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Author:      m.Author,
		Category:    domain.Category(m.Category),
		CoverURL:    m.CoverURL,
		DownloadURL: m.DownloadURL,
		Department:  m.Department,
		CourseCode:  m.CourseCode,
		CourseTitle: m.CourseTitle,
		Level:       m.Level,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBook{
		Title:       book.Title,
		Author:      book.Author,
		Category:    string(book.Category),
		CoverURL:    book.CoverURL,
		DownloadURL: book.DownloadURL,
		Department:  book.Department,
		CourseCode:  book.CourseCode,
		CourseTitle: book.CourseTitle,
		Level:       book.Level,
		CreatedAt:   book.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// List returns the full catalog, newest first.
func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	books := []*domain.Book{}
	for cur.Next(ctx) {
		var mb mongoBook
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	return books, cur.Err()
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// EnsureIndexes creates the sort/filter indexes on the books collection.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
