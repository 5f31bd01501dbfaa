package database

import (
	"context"

	"github.com/craftly-living/backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "find", "User", usernameTakenMessage)
	}
	return &user, nil
}

// FindByUsername returns a user by its unique username
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "find", "User", usernameTakenMessage)
	}
	return &user, nil
}

// Add inserts a new user. The unique index on username is the conflict check.
func (r *UserRepo) Add(ctx context.Context, input models.NewUser) (*models.User, error) {
	user := models.User{Username: input.Username, Password: input.Password}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate(err, "create", "User", usernameTakenMessage)
	}
	return &user, nil
}
