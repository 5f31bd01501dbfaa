package database

import (
	"context"

	"github.com/craftly-living/backend/models"
	"gorm.io/gorm"
)

type RenovationProjectRepo struct {
	db *gorm.DB
}

func NewRenovationProjectRepo(db *gorm.DB) *RenovationProjectRepo {
	return &RenovationProjectRepo{db}
}

// FindByUser returns the projects of one user, or all projects when userID is nil
func (r *RenovationProjectRepo) FindByUser(ctx context.Context, userID *int64) ([]*models.RenovationProject, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	projects := []*models.RenovationProject{}
	if err := query.Find(&projects).Error; err != nil {
		return nil, translate(err, "find", "renovation projects", "")
	}
	return projects, nil
}

// Add inserts a new renovation project and returns the stored row
func (r *RenovationProjectRepo) Add(ctx context.Context, input models.RenovationProjectInput) (*models.RenovationProject, error) {
	project := input.Record()
	if err := r.db.WithContext(ctx).Omit("User").Create(&project).Error; err != nil {
		return nil, translate(err, "create", "renovation project", "Renovation project already exists")
	}
	return &project, nil
}
