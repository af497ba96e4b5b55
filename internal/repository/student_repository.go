package repository

import (
	"database/sql"
	"time"

	"collegeerp/internal/entity"

	"github.com/lib/pq"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) FindByEmail(email string) (*entity.Student, error) {
	var s entity.Student
	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, roll_no, branch, semester, subjects, created_at
		FROM students
		WHERE email = $1
	`, email).Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.RollNo, &s.Branch,
		&s.Semester, pq.Array(&s.Subjects), &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *StudentRepository) FindByID(id int) (*entity.Student, error) {
	var s entity.Student
	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, roll_no, branch, semester, subjects, created_at
		FROM students
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.RollNo, &s.Branch,
		&s.Semester, pq.Array(&s.Subjects), &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *StudentRepository) Create(s *entity.Student) error {
	return r.db.QueryRow(`
		INSERT INTO students (name, email, password_hash, roll_no, branch, semester, subjects, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, s.Name, s.Email, s.PasswordHash, s.RollNo, s.Branch, s.Semester,
		pq.Array(s.Subjects), time.Now()).Scan(&s.ID, &s.CreatedAt)
}

func (r *StudentRepository) All() ([]entity.Student, error) {
	return r.list(`
		SELECT id, name, email, roll_no, branch, semester, subjects, created_at
		FROM students
		ORDER BY created_at DESC
	`)
}

func (r *StudentRepository) ByBranch(branch string) ([]entity.Student, error) {
	return r.list(`
		SELECT id, name, email, roll_no, branch, semester, subjects, created_at
		FROM students
		WHERE branch = $1
		ORDER BY roll_no
	`, branch)
}

func (r *StudentRepository) ByBranchSemester(branch, semester string) ([]entity.Student, error) {
	return r.list(`
		SELECT id, name, email, roll_no, branch, semester, subjects, created_at
		FROM students
		WHERE branch = $1 AND semester = $2
		ORDER BY roll_no
	`, branch, semester)
}

func (r *StudentRepository) list(query string, args ...any) ([]entity.Student, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]entity.Student, 0)
	for rows.Next() {
		var s entity.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.RollNo, &s.Branch, &s.Semester,
			pq.Array(&s.Subjects), &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// Update rewrites the mutable fields. An empty PasswordHash keeps the
// stored hash.
func (r *StudentRepository) Update(s *entity.Student) (*entity.Student, error) {
	var updated entity.Student
	var err error

	if s.PasswordHash != "" {
		err = r.db.QueryRow(`
			UPDATE students
			SET name = $1, email = $2, roll_no = $3, branch = $4, semester = $5, password_hash = $6
			WHERE id = $7
			RETURNING id, name, email, roll_no, branch, semester, subjects, created_at
		`, s.Name, s.Email, s.RollNo, s.Branch, s.Semester, s.PasswordHash, s.ID).Scan(
			&updated.ID, &updated.Name, &updated.Email, &updated.RollNo, &updated.Branch,
			&updated.Semester, pq.Array(&updated.Subjects), &updated.CreatedAt)
	} else {
		err = r.db.QueryRow(`
			UPDATE students
			SET name = $1, email = $2, roll_no = $3, branch = $4, semester = $5
			WHERE id = $6
			RETURNING id, name, email, roll_no, branch, semester, subjects, created_at
		`, s.Name, s.Email, s.RollNo, s.Branch, s.Semester, s.ID).Scan(
			&updated.ID, &updated.Name, &updated.Email, &updated.RollNo, &updated.Branch,
			&updated.Semester, pq.Array(&updated.Subjects), &updated.CreatedAt)
	}

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the student and returns its name for logging.
func (r *StudentRepository) Delete(id int) (string, error) {
	var name string
	err := r.db.QueryRow(`
		DELETE FROM students WHERE id = $1 RETURNING name
	`, id).Scan(&name)

	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}

	return name, err
}
