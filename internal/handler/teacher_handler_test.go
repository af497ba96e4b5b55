package handler

import (
	"net/http"
	"strings"
	"testing"

	"collegeerp/internal/curriculum"
	"collegeerp/internal/entity"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type recordingTeachers struct {
	created []entity.Teacher
}

func (f *recordingTeachers) Create(t *entity.Teacher) error {
	t.ID = len(f.created) + 1
	f.created = append(f.created, *t)
	return nil
}

func (f *recordingTeachers) All() ([]entity.Teacher, error) { return f.created, nil }

func (f *recordingTeachers) FindByID(id int) (*entity.Teacher, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			return &f.created[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *recordingTeachers) Update(t *entity.Teacher) (*entity.Teacher, error) {
	return nil, repository.ErrNotFound
}

func (f *recordingTeachers) Delete(id int) (string, error) {
	return "", repository.ErrNotFound
}

func TestTeacherCreateAssignsFirstSemesterSubjects(t *testing.T) {
	teachers := &recordingTeachers{}
	store := &fakeCurriculum{entries: []entity.CurriculumEntry{
		{ID: 1, Branch: "CSE", Semester: "1st", Subjects: []string{"DBMS", "OS"}},
		{ID: 2, Branch: "CSE", Semester: "2nd", Subjects: []string{"CN"}},
	}}
	h := NewTeacherHandler(teachers, curriculum.NewResolver(store), zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/teachers", h.Create)

	w := postJSON(mux, "/api/teachers",
		`{"name":"Prof","email":"Prof@College.com","setDefaultPassword":true,"branch":"CSE","salary":50000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(teachers.created) != 1 {
		t.Fatalf("Expected 1 teacher, got %d", len(teachers.created))
	}
	created := teachers.created[0]
	if strings.Join(created.Subjects, ",") != "DBMS,OS" {
		t.Errorf("Expected first-semester subjects [DBMS OS], got %v", created.Subjects)
	}
	if created.Email != "prof@college.com" {
		t.Errorf("Expected lower-cased email, got %q", created.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("teacher123")) != nil {
		t.Error("Expected default password to be hashed and verifiable")
	}
}

func TestTeacherCreateValidation(t *testing.T) {
	h := NewTeacherHandler(&recordingTeachers{}, curriculum.NewResolver(&fakeCurriculum{}), zap.NewNop())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/teachers", h.Create)

	if w := postJSON(mux, "/api/teachers", `{"name":"Prof"}`); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing fields, got %d", w.Code)
	}
	if w := postJSON(mux, "/api/teachers",
		`{"name":"Prof","email":"p@c.com","branch":"CSE"}`); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without password or default flag, got %d", w.Code)
	}
}
