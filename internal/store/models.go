package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrExists   = errors.New("user already exists")
)

type User struct {
	Username     string
	PasswordHash string
	AvatarPath   string
	CreatedAt    time.Time
}
