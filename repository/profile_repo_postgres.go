package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

type PostgresProfileRepo struct {
	DB *sql.DB
}

func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{DB: db}
}

// SaveProfile upserts the single mill profile row. Mobile entries are stored
// as a jsonb column.
func (r *PostgresProfileRepo) SaveProfile(profile *models.MillProfile) error {
	if profile.ID == 0 {
		profile.ID = 1
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	mobile, err := json.Marshal(profile.Mobile)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO mill_profile(id,name,address,city,state,pincode,gstin,footnote,mobile,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT(id) DO UPDATE SET
			name=EXCLUDED.name,address=EXCLUDED.address,city=EXCLUDED.city,
			state=EXCLUDED.state,pincode=EXCLUDED.pincode,gstin=EXCLUDED.gstin,
			footnote=EXCLUDED.footnote,mobile=EXCLUDED.mobile
	`, profile.ID, profile.MillName, profile.Address, profile.City, profile.State,
		profile.Pincode, profile.GSTIN, profile.Footnote, mobile, profile.CreatedAt)
	return err
}

func (r *PostgresProfileRepo) GetProfile() (*models.MillProfile, error) {
	p := &models.MillProfile{}
	var mobile []byte
	err := r.DB.QueryRow(`
		SELECT id,name,address,city,state,pincode,gstin,footnote,mobile,created_at
		FROM mill_profile ORDER BY id LIMIT 1
	`).Scan(&p.ID, &p.MillName, &p.Address, &p.City, &p.State, &p.Pincode, &p.GSTIN, &p.Footnote, &mobile, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(mobile) > 0 {
		if err := json.Unmarshal(mobile, &p.Mobile); err != nil {
			return nil, err
		}
	}
	return p, nil
}
