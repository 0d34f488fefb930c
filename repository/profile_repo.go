package repository

import "github.com/atanum62/shyama-erp-sub000/models"

type ProfileRepository interface {
	SaveProfile(profile *models.MillProfile) error
	GetProfile() (*models.MillProfile, error)
}
