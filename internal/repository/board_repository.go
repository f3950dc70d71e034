package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// BoardRepository defines board persistence operations.
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	FindByID(ctx context.Context, id uint) (*model.Board, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Board, error)
	// WithTransaction executes fn within a single database transaction. The
	// repositories passed to fn are bound to that transaction so ownership
	// checks and writes commit or roll back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, boards BoardRepository, tasks TaskRepository) error) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new board repository.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

// Create creates a new board.
func (r *boardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindByID finds a board by ID.
func (r *boardRepository) FindByID(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListByOwner lists the boards owned by a user in insertion order.
func (r *boardRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Board, error) {
	var boards []model.Board
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// WithTransaction executes a function within a database transaction.
func (r *boardRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, boards BoardRepository, tasks TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &boardRepository{db: tx}, &taskRepository{db: tx})
	})
}
