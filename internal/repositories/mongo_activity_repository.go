package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskflow/internal/models"
)

const activitiesCollection = "activities"

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Action    string             `bson:"action"`
	TaskTitle string             `bson:"taskTitle"`
	Timestamp time.Time          `bson:"timestamp"`
}

type mongoActivityRepository struct {
	coll *mongo.Collection
}

func NewMongoActivityRepository(db *mongo.Database) ActivityRepository {
	return &mongoActivityRepository{coll: db.Collection(activitiesCollection)}
}

func (r *mongoActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	doc := activityDoc{
		ID:        primitive.NewObjectID(),
		Action:    a.Action,
		TaskTitle: a.TaskTitle,
		Timestamp: a.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (r *mongoActivityRepository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Activity{}
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, models.Activity{
			ID:        doc.ID.Hex(),
			Action:    doc.Action,
			TaskTitle: doc.TaskTitle,
			Timestamp: doc.Timestamp.UTC(),
		})
	}
	return out, cur.Err()
}

func (r *mongoActivityRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
