package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskflow/internal/models"
)

const tasksCollection = "tasks"

type subtaskDoc struct {
	// Older documents carry ObjectID subtask ids, newer ones strings.
	ID        any    `bson:"_id"`
	Title     string `bson:"title"`
	Completed bool   `bson:"completed"`
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     *time.Time         `bson:"dueDate"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
	Category    string             `bson:"category"`
	Assignee    *string            `bson:"assignee"`
	Completed   bool               `bson:"completed"`
	Subtasks    []subtaskDoc       `bson:"subtasks"`
	FocusTime   int64              `bson:"focusTime"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// subtaskID reads a stored subtask id. Entries saved without one get an id
// derived from the task and position, so repeated reads agree until the next
// update writes the list back with real ids.
func subtaskID(task primitive.ObjectID, pos int, v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		if id != "" {
			return id
		}
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/subtasks/%d", task.Hex(), pos))).String()
}

func toTaskDoc(t *models.Task) taskDoc {
	subs := make([]subtaskDoc, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		subs = append(subs, subtaskDoc{ID: st.ID, Title: st.Title, Completed: st.Completed})
	}
	return taskDoc{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Category:    t.Category,
		Assignee:    t.Assignee,
		Completed:   t.Completed,
		Subtasks:    subs,
		FocusTime:   t.FocusTime,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d taskDoc) model() models.Task {
	subs := make([]models.Subtask, 0, len(d.Subtasks))
	for i, st := range d.Subtasks {
		subs = append(subs, models.Subtask{ID: subtaskID(d.ID, i, st.ID), Title: st.Title, Completed: st.Completed})
	}
	var due *time.Time
	if d.DueDate != nil {
		u := d.DueDate.UTC()
		due = &u
	}
	return models.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     due,
		Priority:    models.TaskPriority(d.Priority),
		Status:      models.TaskStatus(d.Status),
		Category:    d.Category,
		Assignee:    d.Assignee,
		Completed:   d.Completed,
		Subtasks:    subs,
		FocusTime:   d.FocusTime,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type mongoTaskRepository struct {
	coll *mongo.Collection
}

func NewMongoTaskRepository(db *mongo.Database) TaskRepository {
	return &mongoTaskRepository{coll: db.Collection(tasksCollection)}
}

func (r *mongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	task.CreatedAt = now
	task.UpdatedAt = now

	doc := toTaskDoc(task)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translateMongo(err)
	}
	task.ID = doc.ID.Hex()
	return nil
}

func (r *mongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc taskDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	t := doc.model()
	return &t, nil
}

func (r *mongoTaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		tasks = append(tasks, doc.model())
	}
	return tasks, cur.Err()
}

func (r *mongoTaskRepository) Update(ctx context.Context, task *models.Task) error {
	oid, err := objectID(task.ID)
	if err != nil {
		return err
	}
	task.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := toTaskDoc(task)

	// focusTime only moves through AddFocusTime's $inc.
	update := bson.M{"$set": bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"dueDate":     doc.DueDate,
		"priority":    doc.Priority,
		"status":      doc.Status,
		"category":    doc.Category,
		"assignee":    doc.Assignee,
		"completed":   doc.Completed,
		"subtasks":    doc.Subtasks,
		"updatedAt":   doc.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var stored taskDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&stored); err != nil {
		return translateMongo(err)
	}
	task.FocusTime = stored.FocusTime
	task.CreatedAt = stored.CreatedAt.UTC()
	return nil
}

func (r *mongoTaskRepository) Delete(ctx context.Context, id string) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc taskDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	t := doc.model()
	return &t, nil
}

func (r *mongoTaskRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"completed": true})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoTaskRepository) AddFocusTime(ctx context.Context, id string, seconds int64) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$inc": bson.M{"focusTime": seconds},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	t := doc.model()
	return &t, nil
}
