package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task is a staff work item such as "Reposition Ama" or "Check BP".
type Task struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Status   string             `bson:"status" json:"status"`
	Assignee string             `bson:"assignee" json:"assignee"`
	Shift    string             `bson:"shift" json:"shift"` // day, evening, night
	DueAt    time.Time          `bson:"due_at" json:"due_at"`
}

// TaskEvent records an action taken against a task, currently only "nudge".
type TaskEvent struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID primitive.ObjectID `bson:"task_id" json:"task_id"`
	Action string             `bson:"action" json:"action"`
	At     time.Time          `bson:"at" json:"at"`
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	return s == TaskStatusOpen || s == TaskStatusInProgress || s == TaskStatusDone
}
