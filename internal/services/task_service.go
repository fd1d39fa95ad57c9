package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService encapsulates staff task logic.
type TaskService struct {
	repo *repository.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask validates and stores a new task.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if task.Status == "" {
		task.Status = models.TaskStatusOpen
	}
	if !models.ValidTaskStatus(task.Status) {
		return nil, fmt.Errorf("invalid task status: %s", task.Status)
	}

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	return created, nil
}

// GetTasks returns tasks filtered by assignee substring and exact shift.
func (s *TaskService) GetTasks(ctx context.Context, assignee, shift string) ([]models.Task, error) {
	return s.repo.GetTasks(ctx, strings.TrimSpace(assignee), strings.ToLower(strings.TrimSpace(shift)))
}

// SetStatus moves a task to a new status.
func (s *TaskService) SetStatus(ctx context.Context, id, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %v", err)
	}
	if !models.ValidTaskStatus(status) {
		return fmt.Errorf("invalid task status: %s", status)
	}

	if _, err := s.repo.GetTaskByID(ctx, objID); err != nil {
		return fmt.Errorf("task not found: %v", err)
	}
	return s.repo.UpdateTaskStatus(ctx, objID, status)
}

// Nudge records a reminder ping against a task.
func (s *TaskService) Nudge(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %v", err)
	}

	if _, err := s.repo.GetTaskByID(ctx, objID); err != nil {
		return fmt.Errorf("task not found: %v", err)
	}
	return s.repo.CreateTaskEvent(ctx, &models.TaskEvent{
		TaskID: objID,
		Action: "nudge",
	})
}
