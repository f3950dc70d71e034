package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskboard/internal/apperrors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// MockBoardRepository is a mock implementation of BoardRepository. Its
// WithTransaction runs fn against the same mocks, standing in for a real
// database transaction.
type MockBoardRepository struct {
	mock.Mock
	tasks *MockTaskRepository
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uint) (*model.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Board, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, boards repository.BoardRepository, tasks repository.TaskRepository) error) error {
	return fn(ctx, m, m.tasks)
}

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.Task, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newBoardServiceMocks() (*MockBoardRepository, *MockTaskRepository, BoardService) {
	tasks := new(MockTaskRepository)
	boards := &MockBoardRepository{tasks: tasks}
	// nil cache client behaves like a permanent miss
	return boards, tasks, NewBoardService(boards, tasks, nil)
}

func TestBoardService_CreateBoard(t *testing.T) {
	t.Run("owner is forced to the caller", func(t *testing.T) {
		boards, _, svc := newBoardServiceMocks()
		boards.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Board) bool {
			return b.Name == "Work" && b.UserID == 42
		})).Return(nil)

		board, err := svc.CreateBoard(context.Background(), 42, "Work")
		assert.NoError(t, err)
		assert.Equal(t, uint(42), board.UserID)
		boards.AssertExpectations(t)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		boards, _, svc := newBoardServiceMocks()

		board, err := svc.CreateBoard(context.Background(), 42, "   ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, board)
		boards.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBoardService_GetBoard(t *testing.T) {
	tests := []struct {
		name          string
		callerID      uint
		setupMock     func(*MockBoardRepository)
		expectedError error
	}{
		{
			name:     "owner gets the board",
			callerID: 42,
			setupMock: func(m *MockBoardRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Board{ID: 1, Name: "Work", UserID: 42}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "another user gets forbidden, not the data",
			callerID: 99,
			setupMock: func(m *MockBoardRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Board{ID: 1, Name: "Work", UserID: 42}, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:     "missing board",
			callerID: 42,
			setupMock: func(m *MockBoardRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBoardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boards, _, svc := newBoardServiceMocks()
			tt.setupMock(boards)

			board, err := svc.GetBoard(context.Background(), tt.callerID, 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, board)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(1), board.ID)
			}
			boards.AssertExpectations(t)
		})
	}
}

func TestBoardService_ListBoards(t *testing.T) {
	boards, _, svc := newBoardServiceMocks()
	boards.On("ListByOwner", mock.Anything, uint(42)).Return([]model.Board{{ID: 1, Name: "Work", UserID: 42}}, nil)
	boards.On("ListByOwner", mock.Anything, uint(99)).Return([]model.Board{}, nil)

	mine, err := svc.ListBoards(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	// Another user's listing never contains the board
	theirs, err := svc.ListBoards(context.Background(), 99)
	assert.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestBoardService_ListTasks(t *testing.T) {
	t.Run("owner lists tasks", func(t *testing.T) {
		boards, tasks, svc := newBoardServiceMocks()
		boards.On("FindByID", mock.Anything, uint(1)).Return(&model.Board{ID: 1, UserID: 42}, nil)
		tasks.On("ListByBoard", mock.Anything, uint(1)).Return([]model.Task{{ID: 5, Name: "Write spec", Status: model.TaskStatusDone, BoardID: 1}}, nil)

		listed, err := svc.ListTasks(context.Background(), 42, 1)
		assert.NoError(t, err)
		assert.Len(t, listed, 1)
		assert.Equal(t, model.TaskStatusDone, listed[0].Status)
	})

	t.Run("non-owner gets forbidden before any task is read", func(t *testing.T) {
		boards, tasks, svc := newBoardServiceMocks()
		boards.On("FindByID", mock.Anything, uint(1)).Return(&model.Board{ID: 1, UserID: 42}, nil)

		listed, err := svc.ListTasks(context.Background(), 99, 1)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, listed)
		tasks.AssertNotCalled(t, "ListByBoard", mock.Anything, mock.Anything)
	})
}

func TestBoardService_CreateTask(t *testing.T) {
	t.Run("status defaults to To Do", func(t *testing.T) {
		boards, tasks, svc := newBoardServiceMocks()
		boards.On("FindByID", mock.Anything, uint(1)).Return(&model.Board{ID: 1, UserID: 42}, nil)
		tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
			return task.Name == "Write spec" && task.Status == model.TaskStatusToDo && task.BoardID == 1
		})).Return(nil)

		task, err := svc.CreateTask(context.Background(), 42, 1, "Write spec")
		assert.NoError(t, err)
		assert.Equal(t, model.TaskStatusToDo, task.Status)
		tasks.AssertExpectations(t)
	})

	t.Run("non-owner cannot add tasks", func(t *testing.T) {
		boards, tasks, svc := newBoardServiceMocks()
		boards.On("FindByID", mock.Anything, uint(1)).Return(&model.Board{ID: 1, UserID: 42}, nil)

		task, err := svc.CreateTask(context.Background(), 99, 1, "Write spec")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, task)
		tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing board", func(t *testing.T) {
		boards, _, svc := newBoardServiceMocks()
		boards.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		task, err := svc.CreateTask(context.Background(), 42, 1, "Write spec")
		assert.ErrorIs(t, err, apperrors.ErrBoardNotFound)
		assert.Nil(t, task)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, _, svc := newBoardServiceMocks()

		task, err := svc.CreateTask(context.Background(), 42, 1, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, task)
	})
}

func TestBoardService_UpdateTaskStatus(t *testing.T) {
	ownedTask := func() *model.Task {
		return &model.Task{
			ID:      5,
			Name:    "Write spec",
			Status:  model.TaskStatusToDo,
			BoardID: 1,
			Board:   model.Board{ID: 1, UserID: 42},
		}
	}

	t.Run("owner updates the status", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()
		tasks.On("FindByID", mock.Anything, uint(5)).Return(ownedTask(), nil)
		tasks.On("Update", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
			return task.ID == 5 && task.Status == model.TaskStatusDone
		})).Return(nil)

		task, err := svc.UpdateTaskStatus(context.Background(), 42, 5, model.TaskStatusDone)
		assert.NoError(t, err)
		assert.Equal(t, model.TaskStatusDone, task.Status)
		tasks.AssertExpectations(t)
	})

	t.Run("non-owner leaves the task unchanged", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()
		tasks.On("FindByID", mock.Anything, uint(5)).Return(ownedTask(), nil)

		task, err := svc.UpdateTaskStatus(context.Background(), 99, 5, model.TaskStatusDone)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Nil(t, task)
		tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()
		tasks.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		task, err := svc.UpdateTaskStatus(context.Background(), 42, 5, model.TaskStatusDone)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		assert.Nil(t, task)
	})

	t.Run("empty status is rejected", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()

		task, err := svc.UpdateTaskStatus(context.Background(), 42, 5, " ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, task)
		tasks.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestBoardService_DeleteTask(t *testing.T) {
	ownedTask := &model.Task{
		ID:      5,
		Name:    "Write spec",
		Status:  model.TaskStatusToDo,
		BoardID: 1,
		Board:   model.Board{ID: 1, UserID: 42},
	}

	t.Run("owner deletes the task", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()
		tasks.On("FindByID", mock.Anything, uint(5)).Return(ownedTask, nil)
		tasks.On("Delete", mock.Anything, uint(5)).Return(nil)

		assert.NoError(t, svc.DeleteTask(context.Background(), 42, 5))
		tasks.AssertExpectations(t)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()
		tasks.On("FindByID", mock.Anything, uint(5)).Return(ownedTask, nil)

		err := svc.DeleteTask(context.Background(), 99, 5)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		_, tasks, svc := newBoardServiceMocks()
		tasks.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteTask(context.Background(), 42, 5)
		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	})
}
