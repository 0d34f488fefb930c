package repository

import "github.com/atanum62/shyama-erp-sub000/models"

// UserRepository defines the interface for operator account operations
type UserRepository interface {
	CreateUser(user *models.AppUser) error
	GetUserByEmail(email string) (*models.AppUser, error)
}
