package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"collegeerp/internal/auth"
	"collegeerp/internal/curriculum"
	"collegeerp/internal/entity"
	middleware "collegeerp/internal/midlleware"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
)

const defaultStudentPassword = "student123"

type StudentStore interface {
	Create(s *entity.Student) error
	All() ([]entity.Student, error)
	ByBranch(branch string) ([]entity.Student, error)
	ByBranchSemester(branch, semester string) ([]entity.Student, error)
	Update(s *entity.Student) (*entity.Student, error)
	Delete(id int) (string, error)
}

type StudentHandler struct {
	students StudentStore
	teachers TeacherStore
	resolver *curriculum.Resolver
	logger   *zap.Logger
}

func NewStudentHandler(students StudentStore, teachers TeacherStore, resolver *curriculum.Resolver, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{students: students, teachers: teachers, resolver: resolver, logger: logger}
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		SetDefaultPassword bool   `json:"setDefaultPassword"`
		Password           string `json:"password"`
		RollNo             string `json:"rollNo"`
		Branch             string `json:"branch"`
		Semester           string `json:"semester"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name, email, roll number, branch and semester required")
		return
	}

	if req.Name == "" || req.Email == "" || req.RollNo == "" || req.Branch == "" || req.Semester == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email, roll number, branch and semester required")
		return
	}

	password := req.Password
	if req.SetDefaultPassword {
		password = defaultStudentPassword
	}
	if password == "" {
		writeMessage(w, http.StatusBadRequest, "Password or setDefaultPassword required")
		return
	}

	hash, err := auth.HashSecret(password)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Subjects come from whatever the curriculum has for the declared
	// branch and semester; unconfigured just means an empty list.
	subjects, _, err := h.resolver.Subjects(req.Branch, req.Semester)
	if err != nil {
		h.logger.Error("subject auto-assign failed", zap.String("branch", req.Branch), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	student := entity.Student{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		RollNo:       req.RollNo,
		Branch:       req.Branch,
		Semester:     req.Semester,
		Subjects:     subjects,
	}
	if err := h.students.Create(&student); err != nil {
		h.logger.Error("student create failed", zap.String("email", student.Email), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("student created", zap.String("email", student.Email),
		zap.String("branch", student.Branch), zap.String("semester", student.Semester))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.All()
	if err != nil {
		h.logger.Error("student list failed", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// ForTeacher lists the students of the calling teacher's own branch.
func (h *StudentHandler) ForTeacher(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	teacher, err := h.teachers.FindByID(claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Teacher not found")
			return
		}
		h.logger.Error("teacher lookup failed", zap.Int("id", claims.AccountID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	students, err := h.students.ByBranch(teacher.Branch)
	if err != nil {
		h.logger.Error("student list failed", zap.String("branch", teacher.Branch), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, students)
}

// ForTeacherSemester lists students of one branch/semester, but only for
// a teacher of that same branch.
func (h *StudentHandler) ForTeacherSemester(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())
	branch := r.PathValue("branch")
	semester := r.PathValue("semester")

	teacher, err := h.teachers.FindByID(claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Teacher not found")
			return
		}
		h.logger.Error("teacher lookup failed", zap.Int("id", claims.AccountID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	if teacher.Branch != branch {
		writeMessage(w, http.StatusForbidden, "Access denied for this branch")
		return
	}

	students, err := h.students.ByBranchSemester(branch, semester)
	if err != nil {
		h.logger.Error("student list failed", zap.String("branch", branch), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		RollNo   string `json:"rollNo"`
		Branch   string `json:"branch"`
		Semester string `json:"semester"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name, email, roll number, branch and semester required")
		return
	}

	student := entity.Student{
		ID:       id,
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		RollNo:   req.RollNo,
		Branch:   req.Branch,
		Semester: req.Semester,
	}
	if req.Password != "" {
		hash, err := auth.HashSecret(req.Password)
		if err != nil {
			h.logger.Error("password hash failed", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		student.PasswordHash = hash
	}

	updated, err := h.students.Update(&student)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Student not found")
			return
		}
		h.logger.Error("student update failed", zap.Int("id", id), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	name, err := h.students.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Student not found")
			return
		}
		h.logger.Error("student delete failed", zap.Int("id", id), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("student deleted", zap.String("name", name))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
