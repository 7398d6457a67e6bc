package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/insight-nexus/auth-system/internal/core/domain"
)

const attemptsCollection = "login_attempts"

// AttemptRepository implements ports.AttemptRepository on MongoDB.
//
// Counter transitions run as single FindOneAndUpdate statements so that
// concurrent attempts for the same email serialize inside the server
// and can never under-count.
type AttemptRepository struct {
	coll *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{coll: db.Collection(attemptsCollection)}
}

type attemptDoc struct {
	Email         string     `bson:"email"`
	Attempts      int        `bson:"attempts"`
	Blocked       bool       `bson:"blocked"`
	AdminApproved bool       `bson:"admin_approved"`
	AdminToken    *string    `bson:"admin_token,omitempty"`
	LastAttempt   *time.Time `bson:"last_attempt,omitempty"`
}

func (r *AttemptRepository) FindByEmail(ctx context.Context, email string) (*domain.LoginAttempt, error) {
	var doc attemptDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("find attempt: %w", err)
	}
	return docToAttempt(doc), nil
}

// RecordFailure is a single upserting pipeline update: the first stage
// increments the counter and refreshes the timestamp, the second blocks
// the record once the post-increment counter reaches the threshold.
func (r *AttemptRepository) RecordFailure(ctx context.Context, email string, at time.Time) (*domain.LoginAttempt, error) {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"email":        email,
			"attempts":     bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$attempts", 0}}, 1}},
			"last_attempt": at.UTC(),
		}},
		bson.M{"$set": bson.M{
			"blocked": bson.M{"$or": bson.A{
				bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$blocked", false}}, true}},
				bson.M{"$gte": bson.A{"$attempts", domain.MaxFailedAttempts}},
			}},
		}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc attemptDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": email}, pipeline, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("record failure: %w", err)
	}
	return docToAttempt(doc), nil
}

func (r *AttemptRepository) RecordSuccess(ctx context.Context, email string, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"email":        email,
		"attempts":     0,
		"blocked":      false,
		"last_attempt": at.UTC(),
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("record success: %w", err)
	}
	return nil
}

func (r *AttemptRepository) SetApprovalToken(ctx context.Context, email, token string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"admin_token": token}})
	if err != nil {
		return fmt.Errorf("set approval token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAttemptNotFound
	}
	return nil
}

// Approve matches on the stored token inside the filter, so the check
// and the consumption are one atomic statement: a mismatched token can
// never mutate the record, and a consumed token can never match twice.
func (r *AttemptRepository) Approve(ctx context.Context, email, token string) error {
	filter := bson.M{"email": email, "admin_token": token}
	update := bson.M{
		"$set":   bson.M{"admin_approved": true, "blocked": false, "attempts": 0},
		"$unset": bson.M{"admin_token": ""},
	}

	err := r.coll.FindOneAndUpdate(ctx, filter, update).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("approve attempt: %w", err)
	}

	// Distinguish a missing record from a bad token for messaging.
	n, countErr := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if countErr != nil {
		return fmt.Errorf("approve attempt: %w", countErr)
	}
	if n == 0 {
		return domain.ErrAttemptNotFound
	}
	return domain.ErrInvalidApprovalToken
}

// EnsureIndexes creates the unique email index.
func (r *AttemptRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func docToAttempt(doc attemptDoc) *domain.LoginAttempt {
	return &domain.LoginAttempt{
		Email:         doc.Email,
		Attempts:      doc.Attempts,
		Blocked:       doc.Blocked,
		AdminApproved: doc.AdminApproved,
		AdminToken:    doc.AdminToken,
		LastAttempt:   doc.LastAttempt,
	}
}
