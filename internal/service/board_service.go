package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/apperrors"
	"taskboard/internal/cache"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const boardListCacheTTL = 1 * time.Minute

// BoardService exposes ownership-scoped board and task operations. Every
// method takes the authenticated caller's user ID explicitly; a resource
// owned by someone else is never returned or mutated.
type BoardService interface {
	ListBoards(ctx context.Context, userID uint) ([]model.Board, error)
	CreateBoard(ctx context.Context, userID uint, name string) (*model.Board, error)
	GetBoard(ctx context.Context, userID, boardID uint) (*model.Board, error)
	ListTasks(ctx context.Context, userID, boardID uint) ([]model.Task, error)
	CreateTask(ctx context.Context, userID, boardID uint, name string) (*model.Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID uint, status string) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uint) error
}

type boardService struct {
	boardRepo repository.BoardRepository
	taskRepo  repository.TaskRepository
	cache     *cache.Client
}

// NewBoardService creates a new board service.
func NewBoardService(boardRepo repository.BoardRepository, taskRepo repository.TaskRepository, cache *cache.Client) BoardService {
	return &boardService{
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
		cache:     cache,
	}
}

func (s *boardService) boardListCacheKey(userID uint) string {
	return fmt.Sprintf("boards:user:%d", userID)
}

// ListBoards returns the caller's boards in insertion order.
func (s *boardService) ListBoards(ctx context.Context, userID uint) ([]model.Board, error) {
	key := s.boardListCacheKey(userID)
	var cached []model.Board
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	boards, err := s.boardRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	s.cache.SetJSON(ctx, key, boards, boardListCacheTTL)
	return boards, nil
}

// CreateBoard creates a board owned by the caller. The owner is always the
// caller's identity, never client-supplied.
func (s *boardService) CreateBoard(ctx context.Context, userID uint, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidInput
	}

	board := &model.Board{
		Name:   name,
		UserID: userID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	_ = s.cache.Delete(ctx, s.boardListCacheKey(userID))
	return board, nil
}

// GetBoard returns a board by ID after verifying the caller owns it. A board
// owned by another user yields ErrForbidden, never its data.
func (s *boardService) GetBoard(ctx context.Context, userID, boardID uint) (*model.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	if board.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return board, nil
}

// ListTasks returns the tasks of a board the caller owns, in insertion order.
func (s *boardService) ListTasks(ctx context.Context, userID, boardID uint) ([]model.Task, error) {
	if _, err := s.GetBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask adds a task to a board the caller owns. The ownership check and
// the insert run in one transaction.
func (s *boardService) CreateTask(ctx context.Context, userID, boardID uint, name string) (*model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidInput
	}

	var created *model.Task
	err := s.boardRepo.WithTransaction(ctx, func(ctx context.Context, boards repository.BoardRepository, tasks repository.TaskRepository) error {
		board, err := boards.FindByID(ctx, boardID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBoardNotFound
			}
			return fmt.Errorf("find board: %w", err)
		}
		if board.UserID != userID {
			return apperrors.ErrForbidden
		}

		task := &model.Task{
			Name:    name,
			Status:  model.TaskStatusToDo,
			BoardID: board.ID,
		}
		if err := tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTaskStatus sets the status of a task whose board the caller owns.
// The ownership check and the update run in one transaction.
func (s *boardService) UpdateTaskStatus(ctx context.Context, userID, taskID uint, status string) (*model.Task, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.ErrInvalidInput
	}

	var updated *model.Task
	err := s.boardRepo.WithTransaction(ctx, func(ctx context.Context, boards repository.BoardRepository, tasks repository.TaskRepository) error {
		task, err := s.findOwnedTask(ctx, tasks, userID, taskID)
		if err != nil {
			return err
		}

		task.Status = status
		if err := tasks.Update(ctx, task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask permanently removes a task whose board the caller owns.
func (s *boardService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	return s.boardRepo.WithTransaction(ctx, func(ctx context.Context, boards repository.BoardRepository, tasks repository.TaskRepository) error {
		task, err := s.findOwnedTask(ctx, tasks, userID, taskID)
		if err != nil {
			return err
		}

		if err := tasks.Delete(ctx, task.ID); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

// findOwnedTask loads a task with its parent board and verifies the board
// belongs to the caller.
func (s *boardService) findOwnedTask(ctx context.Context, tasks repository.TaskRepository, userID, taskID uint) (*model.Task, error) {
	task, err := tasks.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.Board.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}
