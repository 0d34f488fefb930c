package repository

import (
	"github.com/atanum62/shyama-erp-sub000/models"
)

// PDFRepository provides methods to fetch data for return-challan PDFs
type PDFRepository struct {
	LotRepo     LotRepository
	ProfileRepo ProfileRepository
}

// NewPDFRepository initializes a PDF repository
func NewPDFRepository(lotRepo LotRepository, profileRepo ProfileRepository) *PDFRepository {
	return &PDFRepository{
		LotRepo:     lotRepo,
		ProfileRepo: profileRepo,
	}
}

// GetLotForPDF fetches a single lot by ID for PDF
func (r *PDFRepository) GetLotForPDF(id int64) (*models.Lot, error) {
	lots, err := r.LotRepo.GetLot(map[string]interface{}{"id": id}, true)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return nil, nil
	}
	return lots[0], nil
}

// GetProfileForPDF fetches the mill letterhead data
func (r *PDFRepository) GetProfileForPDF() (*models.MillProfile, error) {
	return r.ProfileRepo.GetProfile()
}
