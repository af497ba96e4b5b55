package repository

import (
	"database/sql"
	"time"

	"collegeerp/internal/entity"
)

type ClassRepository struct {
	db *sql.DB
}

func NewClassRepository(db *sql.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ByTeacher returns the teacher's classes, most recent start first, with
// the roster resolved to student name/roll/semester.
func (r *ClassRepository) ByTeacher(teacherID int) ([]entity.ClassSession, error) {
	rows, err := r.db.Query(`
		SELECT id, name, branch, semester, COALESCE(subject, ''), teacher_id,
			start_time, end_time, created_at
		FROM classes
		WHERE teacher_id = $1
		ORDER BY start_time DESC
	`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]entity.ClassSession, 0)
	for rows.Next() {
		var c entity.ClassSession
		if err := rows.Scan(&c.ID, &c.Name, &c.Branch, &c.Semester, &c.Subject,
			&c.TeacherID, &c.StartTime, &c.EndTime, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range classes {
		roster, err := r.roster(classes[i].ID)
		if err != nil {
			return nil, err
		}
		classes[i].Students = roster
	}

	return classes, nil
}

func (r *ClassRepository) roster(classID int) ([]entity.ClassStudent, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.name, s.roll_no, s.semester
		FROM class_students cs
		JOIN students s ON s.id = cs.student_id
		WHERE cs.class_id = $1
		ORDER BY s.roll_no
	`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := make([]entity.ClassStudent, 0)
	for rows.Next() {
		var cs entity.ClassStudent
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.RollNo, &cs.Semester); err != nil {
			return nil, err
		}
		roster = append(roster, cs)
	}

	return roster, rows.Err()
}

func (r *ClassRepository) Create(c *entity.ClassSession) error {
	var subject any
	if c.Subject != "" {
		subject = c.Subject
	}

	return r.db.QueryRow(`
		INSERT INTO classes (name, branch, semester, subject, teacher_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, c.Name, c.Branch, c.Semester, subject, c.TeacherID, c.StartTime, c.EndTime,
		time.Now()).Scan(&c.ID, &c.CreatedAt)
}

// OwnedBy reports whether the class exists and belongs to the teacher.
func (r *ClassRepository) OwnedBy(classID, teacherID int) (bool, error) {
	var owned bool
	err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1 AND teacher_id = $2)
	`, classID, teacherID).Scan(&owned)

	if err == sql.ErrNoRows {
		return false, nil
	}

	return owned, err
}

// AddStudents fills the roster, ignoring ids already present.
func (r *ClassRepository) AddStudents(classID int, studentIDs []int) error {
	for _, id := range studentIDs {
		_, err := r.db.Exec(`
			INSERT INTO class_students (class_id, student_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, classID, id)
		if err != nil {
			return err
		}
	}
	return nil
}
