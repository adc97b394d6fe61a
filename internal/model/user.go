package model

import "time"

// User : учетная запись пользователя
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name,omitempty"`
	SecondName   string    `db:"second_name" json:"second_name,omitempty"`
	LastName     string    `db:"last_name" json:"last_name,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser" json:"is_superuser"`
	CreatedAt    time.Time `db:"created" json:"created_at"`
	UpdatedAt    time.Time `db:"updated" json:"updated_at"`
}

// UserUpdate : частичное обновление учетной записи, nil-поле не трогается
type UserUpdate struct {
	Username   *string
	Email      *string
	FirstName  *string
	SecondName *string
	LastName   *string
}
