package repository

import (
	"database/sql"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

type PostgresPartyRepo struct {
	DB *sql.DB
}

func NewPostgresPartyRepo(db *sql.DB) *PostgresPartyRepo {
	return &PostgresPartyRepo{DB: db}
}

func (r *PostgresPartyRepo) CreateParty(party *models.Party) error {
	if party.CreatedAt.IsZero() {
		party.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO party(name,gstin,city,mobile,created_at)
		VALUES($1,$2,$3,$4,$5)
		RETURNING id
	`, party.Name, party.GSTIN, party.City, party.Mobile, party.CreatedAt).Scan(&party.ID)
}

func (r *PostgresPartyRepo) ListParties() ([]*models.Party, error) {
	rows, err := r.DB.Query(`SELECT id,name,gstin,city,mobile,created_at FROM party ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Party
	for rows.Next() {
		p := &models.Party{}
		if err := rows.Scan(&p.ID, &p.Name, &p.GSTIN, &p.City, &p.Mobile, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPartyRepo) GetParty(id int64) (*models.Party, error) {
	p := &models.Party{}
	err := r.DB.QueryRow(`SELECT id,name,gstin,city,mobile,created_at FROM party WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.GSTIN, &p.City, &p.Mobile, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
