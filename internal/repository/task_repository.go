package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	// FindByID finds a task by ID with its parent board preloaded so callers
	// can check the board owner without a second query.
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListByBoard(ctx context.Context, boardID uint) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID, preloading the parent board.
func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Board").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByBoard lists the tasks of a board in insertion order.
func (r *taskRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates an existing task. Associations are omitted so a preloaded
// parent board is never written back.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete permanently removes a task.
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}
