package repository

import (
	"database/sql"
	"time"

	"collegeerp/internal/entity"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) FindByEmail(email string) (*entity.Admin, error) {
	var a entity.Admin
	err := r.db.QueryRow(`
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *AdminRepository) FindByID(id int) (*entity.Admin, error) {
	var a entity.Admin
	err := r.db.QueryRow(`
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// HasAdmin reports whether any administrator account exists. Used once at
// startup to decide whether to seed the default one.
func (r *AdminRepository) HasAdmin() (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users)`).Scan(&exists)
	return exists, err
}

func (r *AdminRepository) Create(email, passwordHash string) (*entity.Admin, error) {
	a := entity.Admin{Email: email, PasswordHash: passwordHash}
	err := r.db.QueryRow(`
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, email, passwordHash, time.Now()).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &a, nil
}
