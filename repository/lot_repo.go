package repository

import (
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

type LotRepository interface {
	CreateLot(lot *models.Lot) error
	GetLot(filters map[string]interface{}, single bool) ([]*models.Lot, error)
	// SaveLot replaces the whole lot document, items included. It is the one
	// commit point for every inspection transition.
	SaveLot(lot *models.Lot) error
	UpdatePDFCreatedAt(lotID int64, t time.Time) error
	DeleteLot(lotID int64) error
	DeleteLotItem(lotID int64, itemID string) error
}
