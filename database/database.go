package database

import (
	"context"

	"github.com/craftly-living/backend/models"
	"gorm.io/gorm"
)

// Storage is the single seam for reading and writing records. Every backend
// reports missing records with errs.NewNotFound, uniqueness violations with
// errs.NewAlreadyExists and any other failure with errs.NewStorageError.
// Nothing is retried.
type Storage interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, input models.NewUser) (*models.User, error)

	CreateRenovationProject(ctx context.Context, input models.RenovationProjectInput) (*models.RenovationProject, error)
	// GetRenovationProjectsByUser returns the projects owned by userID, or
	// every project when userID is nil. Results are ordered by id.
	GetRenovationProjectsByUser(ctx context.Context, userID *int64) ([]*models.RenovationProject, error)

	CreateBuilder(ctx context.Context, input models.BuilderInput) (*models.Builder, error)
	GetBuilder(ctx context.Context, id int64) (*models.Builder, error)
	GetBuilderByEmail(ctx context.Context, email string) (*models.Builder, error)
	GetAllBuilders(ctx context.Context) ([]*models.Builder, error)
}

// Database is the gorm-backed Storage. Each repository shares one *gorm.DB.
type Database struct {
	userRepo              *UserRepo
	renovationProjectRepo *RenovationProjectRepo
	builderRepo           *BuilderRepo
}

var _ Storage = Database{}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:              NewUserRepo(db),
		renovationProjectRepo: NewRenovationProjectRepo(db),
		builderRepo:           NewBuilderRepo(db),
	}
}

func (d Database) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return d.userRepo.FindByID(ctx, id)
}

func (d Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.userRepo.FindByUsername(ctx, username)
}

func (d Database) CreateUser(ctx context.Context, input models.NewUser) (*models.User, error) {
	return d.userRepo.Add(ctx, input)
}

func (d Database) CreateRenovationProject(ctx context.Context, input models.RenovationProjectInput) (*models.RenovationProject, error) {
	return d.renovationProjectRepo.Add(ctx, input)
}

func (d Database) GetRenovationProjectsByUser(ctx context.Context, userID *int64) ([]*models.RenovationProject, error) {
	return d.renovationProjectRepo.FindByUser(ctx, userID)
}

func (d Database) CreateBuilder(ctx context.Context, input models.BuilderInput) (*models.Builder, error) {
	return d.builderRepo.Add(ctx, input)
}

func (d Database) GetBuilder(ctx context.Context, id int64) (*models.Builder, error) {
	return d.builderRepo.FindByID(ctx, id)
}

func (d Database) GetBuilderByEmail(ctx context.Context, email string) (*models.Builder, error) {
	return d.builderRepo.FindByEmail(ctx, email)
}

func (d Database) GetAllBuilders(ctx context.Context) ([]*models.Builder, error) {
	return d.builderRepo.FindAll(ctx)
}
