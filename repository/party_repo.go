package repository

import "github.com/atanum62/shyama-erp-sub000/models"

type PartyRepository interface {
	CreateParty(party *models.Party) error
	ListParties() ([]*models.Party, error)
	GetParty(id int64) (*models.Party, error)
}
