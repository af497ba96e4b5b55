package repository

import (
	"database/sql"
	"time"

	"collegeerp/internal/entity"

	"github.com/lib/pq"
)

type CurriculumRepository struct {
	db *sql.DB
}

func NewCurriculumRepository(db *sql.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// Entries returns curriculum rows for a branch in insertion order. An
// empty semester matches every semester of the branch. Several rows can
// match the same (branch, semester) pair; callers deduplicate.
func (r *CurriculumRepository) Entries(branch, semester string) ([]entity.CurriculumEntry, error) {
	query := `
		SELECT id, branch, semester, subjects, created_at
		FROM subjects
		WHERE branch = $1
		ORDER BY id
	`
	args := []any{branch}

	if semester != "" {
		query = `
			SELECT id, branch, semester, subjects, created_at
			FROM subjects
			WHERE branch = $1 AND semester = $2
			ORDER BY id
		`
		args = append(args, semester)
	}

	return r.list(query, args...)
}

func (r *CurriculumRepository) All() ([]entity.CurriculumEntry, error) {
	return r.list(`
		SELECT id, branch, semester, subjects, created_at
		FROM subjects
		ORDER BY created_at DESC
	`)
}

func (r *CurriculumRepository) list(query string, args ...any) ([]entity.CurriculumEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]entity.CurriculumEntry, 0)
	for rows.Next() {
		var e entity.CurriculumEntry
		if err := rows.Scan(&e.ID, &e.Branch, &e.Semester, pq.Array(&e.Subjects),
			&e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Exists is a plain check-then-insert guard. There is no unique index on
// (branch, semester), so two concurrent creates can still both pass; the
// read path tolerates the duplicates.
func (r *CurriculumRepository) Exists(branch, semester string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM subjects WHERE branch = $1 AND semester = $2)
	`, branch, semester).Scan(&exists)
	return exists, err
}

func (r *CurriculumRepository) Create(branch, semester string, subjects []string) (*entity.CurriculumEntry, error) {
	e := entity.CurriculumEntry{Branch: branch, Semester: semester, Subjects: subjects}
	err := r.db.QueryRow(`
		INSERT INTO subjects (branch, semester, subjects, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, branch, semester, pq.Array(subjects), time.Now()).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *CurriculumRepository) Update(id int, branch, semester string, subjects []string) (*entity.CurriculumEntry, error) {
	var e entity.CurriculumEntry
	err := r.db.QueryRow(`
		UPDATE subjects
		SET branch = $1, semester = $2, subjects = $3
		WHERE id = $4
		RETURNING id, branch, semester, subjects, created_at
	`, branch, semester, pq.Array(subjects), id).Scan(
		&e.ID, &e.Branch, &e.Semester, pq.Array(&e.Subjects), &e.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *CurriculumRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *CurriculumRepository) Branches() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT branch FROM subjects ORDER BY branch`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]string, 0)
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	return branches, rows.Err()
}
