package repository

import (
	"context"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaskRepository handles the task and task event collections.
type TaskRepository struct {
	tasks  *mongo.Collection
	events *mongo.Collection
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		tasks:  db.Collection("tasks"),
		events: db.Collection("task_events"),
	}
}

// CreateTask inserts a new task.
func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	result, err := r.tasks.InsertOne(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert task")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = insertedID
	}

	logger.Log.WithField("task_id", task.ID.Hex()).Info("Task created successfully")
	return task, nil
}

// GetTaskByID fetches a task by its ID.
func (r *TaskRepository) GetTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to find task by ID")
		return nil, err
	}
	return &task, nil
}

// GetTasks fetches tasks with optional assignee and shift filters.
func (r *TaskRepository) GetTasks(ctx context.Context, assignee, shift string) ([]models.Task, error) {
	filter := bson.M{}
	if assignee != "" {
		filter["assignee"] = bson.M{"$regex": assignee, "$options": "i"}
	}
	if shift != "" {
		filter["shift"] = shift
	}

	cursor, err := r.tasks.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch tasks")
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus sets the status of a task.
func (r *TaskRepository) UpdateTaskStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to update task status")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"task_id": id.Hex(),
		"status":  status,
	}).Info("Task status updated")
	return nil
}

// CreateTaskEvent appends an action record for a task.
func (r *TaskRepository) CreateTaskEvent(ctx context.Context, event *models.TaskEvent) error {
	event.At = time.Now()

	_, err := r.events.InsertOne(ctx, event)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", event.TaskID.Hex()).Error("Failed to insert task event")
		return err
	}
	return nil
}

// CountEventsSince counts task events of one action type since a cutoff.
func (r *TaskRepository) CountEventsSince(ctx context.Context, action string, since time.Time) (int64, error) {
	count, err := r.events.CountDocuments(ctx, bson.M{
		"action": action,
		"at":     bson.M{"$gte": since},
	})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to count task events")
		return 0, err
	}
	return count, nil
}
