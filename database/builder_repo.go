package database

import (
	"context"

	"github.com/craftly-living/backend/models"
	"gorm.io/gorm"
)

type BuilderRepo struct {
	db *gorm.DB
}

func NewBuilderRepo(db *gorm.DB) *BuilderRepo {
	return &BuilderRepo{db}
}

// FindAll returns all builders ordered by id
func (r *BuilderRepo) FindAll(ctx context.Context) ([]*models.Builder, error) {
	builders := []*models.Builder{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&builders).Error; err != nil {
		return nil, translate(err, "find", "builders", builderEmailMessage)
	}
	return builders, nil
}

// FindByID returns a builder by its ID
func (r *BuilderRepo) FindByID(ctx context.Context, id int64) (*models.Builder, error) {
	var builder models.Builder
	if err := r.db.WithContext(ctx).First(&builder, id).Error; err != nil {
		return nil, translate(err, "find", "Builder", builderEmailMessage)
	}
	return &builder, nil
}

// FindByEmail returns the builder registered with email
func (r *BuilderRepo) FindByEmail(ctx context.Context, email string) (*models.Builder, error) {
	var builder models.Builder
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&builder).Error; err != nil {
		return nil, translate(err, "find", "Builder", builderEmailMessage)
	}
	return &builder, nil
}

// Add inserts a new builder. The unique index on email rejects duplicates, so
// there is no separate existence check before the insert.
func (r *BuilderRepo) Add(ctx context.Context, input models.BuilderInput) (*models.Builder, error) {
	builder := input.Record()
	if err := r.db.WithContext(ctx).Create(&builder).Error; err != nil {
		return nil, translate(err, "create", "Builder", builderEmailMessage)
	}
	return &builder, nil
}
