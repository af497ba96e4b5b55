package repository

import (
	"database/sql"
	"time"

	"collegeerp/internal/entity"

	"github.com/lib/pq"
)

type TeacherRepository struct {
	db *sql.DB
}

func NewTeacherRepository(db *sql.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) FindByEmail(email string) (*entity.Teacher, error) {
	var t entity.Teacher
	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, branch, salary, subjects, created_at
		FROM teachers
		WHERE email = $1
	`, email).Scan(&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.Branch, &t.Salary,
		pq.Array(&t.Subjects), &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TeacherRepository) FindByID(id int) (*entity.Teacher, error) {
	var t entity.Teacher
	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, branch, salary, subjects, created_at
		FROM teachers
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.Branch, &t.Salary,
		pq.Array(&t.Subjects), &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Create inserts the teacher and fills in the generated id and timestamp.
func (r *TeacherRepository) Create(t *entity.Teacher) error {
	return r.db.QueryRow(`
		INSERT INTO teachers (name, email, password_hash, branch, salary, subjects, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, t.Name, t.Email, t.PasswordHash, t.Branch, t.Salary, pq.Array(t.Subjects),
		time.Now()).Scan(&t.ID, &t.CreatedAt)
}

func (r *TeacherRepository) All() ([]entity.Teacher, error) {
	rows, err := r.db.Query(`
		SELECT id, name, email, branch, salary, subjects, created_at
		FROM teachers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]entity.Teacher, 0)
	for rows.Next() {
		var t entity.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Branch, &t.Salary,
			pq.Array(&t.Subjects), &t.CreatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}

	return teachers, rows.Err()
}

// Update rewrites the mutable fields. An empty PasswordHash keeps the
// stored hash.
func (r *TeacherRepository) Update(t *entity.Teacher) (*entity.Teacher, error) {
	var updated entity.Teacher
	var err error

	if t.PasswordHash != "" {
		err = r.db.QueryRow(`
			UPDATE teachers
			SET name = $1, email = $2, branch = $3, salary = $4, password_hash = $5
			WHERE id = $6
			RETURNING id, name, email, branch, salary, subjects, created_at
		`, t.Name, t.Email, t.Branch, t.Salary, t.PasswordHash, t.ID).Scan(
			&updated.ID, &updated.Name, &updated.Email, &updated.Branch, &updated.Salary,
			pq.Array(&updated.Subjects), &updated.CreatedAt)
	} else {
		err = r.db.QueryRow(`
			UPDATE teachers
			SET name = $1, email = $2, branch = $3, salary = $4
			WHERE id = $5
			RETURNING id, name, email, branch, salary, subjects, created_at
		`, t.Name, t.Email, t.Branch, t.Salary, t.ID).Scan(
			&updated.ID, &updated.Name, &updated.Email, &updated.Branch, &updated.Salary,
			pq.Array(&updated.Subjects), &updated.CreatedAt)
	}

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the teacher and returns its name for logging.
func (r *TeacherRepository) Delete(id int) (string, error) {
	var name string
	err := r.db.QueryRow(`
		DELETE FROM teachers WHERE id = $1 RETURNING name
	`, id).Scan(&name)

	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}

	return name, err
}
