package repositories

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decodeTask(t *testing.T, raw []byte) taskDoc {
	t.Helper()
	var doc taskDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestTaskDocSubtaskIDs(t *testing.T) {
	legacy := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"_id":   primitive.NewObjectID(),
		"title": "Plan",
		"subtasks": bson.A{
			bson.M{"_id": legacy, "title": "old"},
			bson.M{"_id": "s-2", "title": "new"},
			bson.M{"title": "bare"},
			bson.M{"title": "bare too", "completed": true},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	first := decodeTask(t, raw).model()
	second := decodeTask(t, raw).model()

	if got := first.Subtasks[0].ID; got != legacy.Hex() {
		t.Errorf("ObjectID subtask id = %q, want %q", got, legacy.Hex())
	}
	if got := first.Subtasks[1].ID; got != "s-2" {
		t.Errorf("string subtask id = %q", got)
	}
	for i := 2; i < 4; i++ {
		if first.Subtasks[i].ID == "" || first.Subtasks[i].ID != second.Subtasks[i].ID {
			t.Errorf("subtask %d id changed between reads: %q vs %q", i, first.Subtasks[i].ID, second.Subtasks[i].ID)
		}
	}
	if first.Subtasks[2].ID == first.Subtasks[3].ID {
		t.Error("id-less subtasks share an id")
	}
	if !first.Subtasks[3].Completed {
		t.Error("completed flag lost")
	}
}
