package cards

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists card records in mongo collections.
type Repository struct {
	db *mongo.Database
}

// NewRepository creates a repo over the injected database handle.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.db.Collection(name)
}

// EnsureIndexes creates the unique index backing the admin allow-list.
// Called once after the connection is ready.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection(CollectionAdminIDs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "adminid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ListPrintRequests returns every pending print request, unfiltered.
func (r *Repository) ListPrintRequests(ctx context.Context) ([]PrintRequest, error) {
	cur, err := r.collection(CollectionPrintRequests).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	docs := make([]PrintRequest, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListAccepted returns every accepted ID card, unfiltered.
func (r *Repository) ListAccepted(ctx context.Context) ([]AcceptedIDCard, error) {
	cur, err := r.collection(CollectionAccepted).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	docs := make([]AcceptedIDCard, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListHistory returns the full acceptance audit trail, unfiltered.
func (r *Repository) ListHistory(ctx context.Context) ([]AcceptanceHistory, error) {
	cur, err := r.collection(CollectionHistory).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	docs := make([]AcceptanceHistory, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// InsertAccepted writes a new accepted card and returns it with the
// storage-assigned identifier filled in.
func (r *Repository) InsertAccepted(ctx context.Context, card AcceptedIDCard) (AcceptedIDCard, error) {
	res, err := r.collection(CollectionAccepted).InsertOne(ctx, card)
	if err != nil {
		return AcceptedIDCard{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		card.ID = oid
	}
	return card, nil
}

// DeletePrintRequests removes every pending request matching registerNumber.
// Zero matches is not an error.
func (r *Repository) DeletePrintRequests(ctx context.Context, registerNumber string) (int64, error) {
	res, err := r.collection(CollectionPrintRequests).DeleteMany(ctx, bson.D{{Key: "registerNumber", Value: registerNumber}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AcceptedExists reports whether an accepted card already carries registerNumber.
func (r *Repository) AcceptedExists(ctx context.Context, registerNumber string) (bool, error) {
	return r.exists(ctx, CollectionAccepted, bson.D{{Key: "registerNumber", Value: registerNumber}})
}

// AdminExists performs the case-sensitive allow-list lookup, projecting
// existence only.
func (r *Repository) AdminExists(ctx context.Context, adminID string) (bool, error) {
	return r.exists(ctx, CollectionAdminIDs, bson.D{{Key: "adminid", Value: adminID}})
}

func (r *Repository) exists(ctx context.Context, coll string, filter bson.D) (bool, error) {
	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})
	err := r.collection(coll).FindOne(ctx, filter, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
