package models

// User is an account holder. Password holds a bcrypt hash, never plain text.
type User struct {
	ID       int64  `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Username string `json:"username" db:"username" gorm:"column:username;type:text;not null;uniqueIndex:idx_users_username"`
	Password string `json:"-" db:"password" gorm:"column:password;type:text;not null"`
}

func (User) TableName() string {
	return "users"
}

// NewUser is the create input for a User. Password is expected to be hashed
// already; see services.HashPassword.
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
