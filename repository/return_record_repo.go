package repository

import "github.com/atanum62/shyama-erp-sub000/models"

type ReturnRecordRepository interface {
	SaveReturnRecord(record *models.ReturnRecord) error
	ListReturnRecords() ([]*models.ReturnRecord, error)
	DeleteReturnRecord(id int64) error
}
