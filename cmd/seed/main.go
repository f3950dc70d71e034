package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	demoEmail    = "demo@taskboard.local"
	demoPassword = "password123"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Board{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	ctx := context.Background()

	user, err := seedUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	boards, err := boardRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list boards: %v", err)
	}
	if len(boards) > 0 {
		log.Printf("Demo user already has %d board(s), nothing to do", len(boards))
		return
	}

	if err := seedBoard(ctx, boardRepo, taskRepo, user.ID); err != nil {
		log.Fatalf("Failed to seed board: %v", err)
	}

	log.Println("Seed completed successfully!")
	log.Printf("  - Demo login: %s / %s", demoEmail, demoPassword)
}

// seedUser creates the demo user unless it already exists.
func seedUser(ctx context.Context, users repository.UserRepository) (*model.User, error) {
	existing, err := users.FindByEmail(ctx, demoEmail)
	if err == nil {
		log.Printf("Demo user %s already exists", demoEmail)
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Created demo user %s", demoEmail)
	return user, nil
}

// seedBoard creates a starter board with a few example tasks.
func seedBoard(ctx context.Context, boards repository.BoardRepository, tasks repository.TaskRepository, userID uint) error {
	board := &model.Board{
		Name:   "Getting Started",
		UserID: userID,
	}
	if err := boards.Create(ctx, board); err != nil {
		return err
	}

	fixtures := []model.Task{
		{Name: "Create your first board", Status: model.TaskStatusDone, BoardID: board.ID},
		{Name: "Add a task", Status: model.TaskStatusInProgress, BoardID: board.ID},
		{Name: "Move a task to Done", Status: model.TaskStatusToDo, BoardID: board.ID},
	}
	for i := range fixtures {
		if err := tasks.Create(ctx, &fixtures[i]); err != nil {
			return err
		}
	}

	log.Printf("Created board %q with %d tasks", board.Name, len(fixtures))
	return nil
}
