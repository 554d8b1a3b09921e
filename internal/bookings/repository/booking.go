package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "github.com/quirino-git/fbs-plan/internal/bookings/errors"
	"github.com/quirino-git/fbs-plan/pkg/config"
	"github.com/quirino-git/fbs-plan/pkg/model"
)

const CollectionName = "Bookings"

// BookingRepository is the boundary to the external booking store. The
// store enforces its overlap constraint as a backstop; the reconciler's
// idempotence logic is the primary defense.
type BookingRepository interface {
	FindByRange(ctx context.Context, start, end time.Time) ([]*model.Booking, error)
	Insert(ctx context.Context, booking *model.Booking) (string, error)
	Delete(ctx context.Context, id string) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a single store operation without extending a tighter
// caller deadline.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

// FindByRange returns bookings whose interval intersects [start, end),
// ordered by start time.
func (r *mongoBookingRepository) FindByRange(ctx context.Context, start, end time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) (string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) || isConstraintViolation(err) {
			return "", fmt.Errorf("%w: %v", bookingserrors.ErrCollision, err)
		}
		return "", fmt.Errorf("failed to insert booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return booking.ID, nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

// isConstraintViolation detects write errors raised by a schema or
// collection validator the store operator configured as overlap backstop.
func isConstraintViolation(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			// 121: document failed validation
			if we.Code == 121 {
				return true
			}
		}
	}
	return false
}
