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

const collectionMeals = "meals"

type MealRepository struct {
	col *mongo.Collection
}

func NewMealRepository(db *mongo.Database) *MealRepository {
	return &MealRepository{col: db.Collection(collectionMeals)}
}

func (r *MealRepository) Create(ctx context.Context, m *domain.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *MealRepository) FindByID(ctx context.Context, id string) (*domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.Meal
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMealNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByUser filters on [day, day+24h) when day is set.
func (r *MealRepository) ListByUser(ctx context.Context, userID string, day time.Time) ([]*domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if !day.IsZero() {
		filter["date"] = bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	meals := []*domain.Meal{}
	if err := cur.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *MealRepository) Update(ctx context.Context, m *domain.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMealNotFound
	}
	return nil
}

func (r *MealRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMealNotFound
	}
	return nil
}

func (r *MealRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
	})
	return err
}
