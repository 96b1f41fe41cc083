package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fittrack/fittrack/internal/core/domain"
)

const collectionWorkouts = "workouts"

type WorkoutRepository struct {
	col *mongo.Collection
}

func NewWorkoutRepository(db *mongo.Database) *WorkoutRepository {
	return &WorkoutRepository{col: db.Collection(collectionWorkouts)}
}

// Create inserts w, assigning it a fresh ID.
func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	w.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, w)
	return err
}

func (r *WorkoutRepository) FindByID(ctx context.Context, id string) (*domain.Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.Workout
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &w, nil
}

// ListByUser returns the user's workouts, newest first.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Workout, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	workouts := []*domain.Workout{}
	if err := cur.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": w.ID}, w)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkoutNotFound
	}
	return nil
}

func (r *WorkoutRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
