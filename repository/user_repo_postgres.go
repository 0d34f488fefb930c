package repository

import (
	"database/sql"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

func (r *PostgresUserRepo) CreateUser(user *models.AppUser) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO app_user(name,email,role,password_hash,created_at)
		VALUES($1,$2,$3,$4,$5)
		RETURNING id
	`, user.Name, user.Email, user.Role, user.Password, user.CreatedAt).Scan(&user.ID)
}

func (r *PostgresUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := r.DB.QueryRow(`
		SELECT id,name,email,role,password_hash,created_at FROM app_user WHERE email=$1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Password, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
