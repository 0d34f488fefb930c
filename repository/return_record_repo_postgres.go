package repository

import (
	"database/sql"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

type PostgresReturnRecordRepo struct {
	DB *sql.DB
}

func NewPostgresReturnRecordRepo(db *sql.DB) *PostgresReturnRecordRepo {
	return &PostgresReturnRecordRepo{DB: db}
}

func (r *PostgresReturnRecordRepo) SaveReturnRecord(record *models.ReturnRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO return_record(
			lot_id,item_id,party_id,party_name,material,diameter,pieces,
			original_color,new_color,original_quantity,received_quantity,
			return_challan_no,return_date,rereceive_challan_no,rereceive_date,created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id
	`,
		record.LotID, record.ItemID, record.PartyID, record.PartyName, record.Material, record.Diameter, record.Pieces,
		record.OriginalColor, record.NewColor, record.OriginalQuantity, record.ReceivedQuantity,
		record.ReturnChallanNo, record.ReturnDate, record.RereceiveChallanNo, record.RereceiveDate, record.CreatedAt,
	).Scan(&record.ID)
}

func (r *PostgresReturnRecordRepo) ListReturnRecords() ([]*models.ReturnRecord, error) {
	rows, err := r.DB.Query(`
		SELECT id,lot_id,item_id,party_id,party_name,material,diameter,pieces,
		       original_color,new_color,original_quantity,received_quantity,
		       return_challan_no,return_date,rereceive_challan_no,rereceive_date,created_at
		FROM return_record ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ReturnRecord
	for rows.Next() {
		rec := &models.ReturnRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.LotID, &rec.ItemID, &rec.PartyID, &rec.PartyName, &rec.Material, &rec.Diameter, &rec.Pieces,
			&rec.OriginalColor, &rec.NewColor, &rec.OriginalQuantity, &rec.ReceivedQuantity,
			&rec.ReturnChallanNo, &rec.ReturnDate, &rec.RereceiveChallanNo, &rec.RereceiveDate, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresReturnRecordRepo) DeleteReturnRecord(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM return_record WHERE id=$1`, id)
	return err
}
