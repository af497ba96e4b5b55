package repository

import (
	"errors"
	"fmt"

	"collegeerp/internal/entity"
)

// AdminStore, TeacherStore and StudentStore are the slices of the three
// account repositories the directory needs.
type AdminStore interface {
	FindByEmail(email string) (*entity.Admin, error)
	FindByID(id int) (*entity.Admin, error)
}

type TeacherStore interface {
	FindByEmail(email string) (*entity.Teacher, error)
	FindByID(id int) (*entity.Teacher, error)
}

type StudentStore interface {
	FindByEmail(email string) (*entity.Student, error)
	FindByID(id int) (*entity.Student, error)
}

// Directory resolves an identifier against the three account stores in a
// fixed priority order: admin first, then teacher, then student. If the
// same email ever ends up in two stores, the higher-priority one wins.
type Directory struct {
	admins   AdminStore
	teachers TeacherStore
	students StudentStore
}

func NewDirectory(admins AdminStore, teachers TeacherStore, students StudentStore) *Directory {
	return &Directory{admins: admins, teachers: teachers, students: students}
}

// FindByIdentifier returns the principal owning the email, tagged with
// the store it came from. ErrNotFound means no store has it; any other
// error means a store could not be queried.
func (d *Directory) FindByIdentifier(email string) (*entity.Principal, error) {
	a, err := d.admins.FindByEmail(email)
	if err == nil {
		return &entity.Principal{
			Kind:         entity.KindAdmin,
			ID:           a.ID,
			Email:        a.Email,
			PasswordHash: a.PasswordHash,
		}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("admin store: %w", err)
	}

	t, err := d.teachers.FindByEmail(email)
	if err == nil {
		return &entity.Principal{
			Kind:         entity.KindTeacher,
			ID:           t.ID,
			Email:        t.Email,
			PasswordHash: t.PasswordHash,
			Name:         t.Name,
			Branch:       t.Branch,
			Salary:       t.Salary,
		}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("teacher store: %w", err)
	}

	s, err := d.students.FindByEmail(email)
	if err == nil {
		return &entity.Principal{
			Kind:         entity.KindStudent,
			ID:           s.ID,
			Email:        s.Email,
			PasswordHash: s.PasswordHash,
			Name:         s.Name,
			Branch:       s.Branch,
			Semester:     s.Semester,
			RollNo:       s.RollNo,
		}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("student store: %w", err)
	}

	return nil, ErrNotFound
}

// ProfileByID fetches the full record behind a session, without the
// password hash (stripped by the entity json tags). The role field is
// filled from the session rather than the row.
func (d *Directory) ProfileByID(kind entity.Kind, id int) (any, error) {
	switch kind {
	case entity.KindTeacher:
		t, err := d.teachers.FindByID(id)
		if err != nil {
			return nil, err
		}
		t.Role = string(kind)
		return t, nil
	case entity.KindStudent:
		s, err := d.students.FindByID(id)
		if err != nil {
			return nil, err
		}
		s.Role = string(kind)
		return s, nil
	default:
		a, err := d.admins.FindByID(id)
		if err != nil {
			return nil, err
		}
		a.Role = string(entity.KindAdmin)
		return a, nil
	}
}
