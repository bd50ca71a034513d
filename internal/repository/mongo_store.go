package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edustar/intake-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SubmissionsCollection is the MongoDB collection holding submissions.
const SubmissionsCollection = "submissions"

// submissionDocument is the stored shape: the questionnaire fields inline with
// the reference number and creation time.
type submissionDocument struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	ReferenceNumber       string             `bson:"referenceNumber"`
	model.SubmissionInput `bson:",inline"`
	CreatedAt             time.Time          `bson:"createdAt"`
}

func (d submissionDocument) toModel() model.Submission {
	return model.Submission{
		ID:              d.ID.Hex(),
		ReferenceNumber: d.ReferenceNumber,
		SubmissionInput: d.SubmissionInput,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

// MongoStore persists submissions in a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(SubmissionsCollection)}
}

// EnsureIndexes creates the unique reference number index and the listing index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "referenceNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_reference_number"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	})
	if err != nil {
		return mongoError(err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, sub *model.Submission) error {
	doc := submissionDocument{
		ReferenceNumber: sub.ReferenceNumber,
		SubmissionInput: sub.SubmissionInput,
		CreatedAt:       sub.CreatedAt,
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return mongoError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}
	return nil
}

func (s *MongoStore) FindByReference(ctx context.Context, ref string) (*model.Submission, error) {
	var doc submissionDocument
	if err := s.coll.FindOne(ctx, bson.M{"referenceNumber": ref}).Decode(&doc); err != nil {
		return nil, mongoError(err)
	}
	sub := doc.toModel()
	return &sub, nil
}

func (s *MongoStore) ListAll(ctx context.Context) ([]model.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, mongoError(err)
	}
	defer cur.Close(ctx)

	subs := []model.Submission{}
	for cur.Next(ctx) {
		var doc submissionDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		subs = append(subs, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, mongoError(err)
	}
	return subs, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func mongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrSubmissionNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateReference
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("mongo: %w", err)
}
