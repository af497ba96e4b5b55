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
	"collegeerp/internal/repository"

	"go.uber.org/zap"
)

const defaultTeacherPassword = "teacher123"

type TeacherStore interface {
	Create(t *entity.Teacher) error
	All() ([]entity.Teacher, error)
	FindByID(id int) (*entity.Teacher, error)
	Update(t *entity.Teacher) (*entity.Teacher, error)
	Delete(id int) (string, error)
}

type TeacherHandler struct {
	teachers TeacherStore
	resolver *curriculum.Resolver
	logger   *zap.Logger
}

func NewTeacherHandler(teachers TeacherStore, resolver *curriculum.Resolver, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, resolver: resolver, logger: logger}
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string  `json:"name"`
		Email              string  `json:"email"`
		SetDefaultPassword bool    `json:"setDefaultPassword"`
		Password           string  `json:"password"`
		Branch             string  `json:"branch"`
		Salary             float64 `json:"salary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name, email and branch required")
		return
	}

	if req.Name == "" || req.Email == "" || req.Branch == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and branch required")
		return
	}

	password := req.Password
	if req.SetDefaultPassword {
		password = defaultTeacherPassword
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

	// New teachers inherit the first-semester subjects of their branch.
	// Nothing configured yet just means an empty list.
	subjects, _, err := h.resolver.Subjects(req.Branch, "1st")
	if err != nil {
		h.logger.Error("subject auto-assign failed", zap.String("branch", req.Branch), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	teacher := entity.Teacher{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Branch:       req.Branch,
		Salary:       req.Salary,
		Subjects:     subjects,
	}
	if err := h.teachers.Create(&teacher); err != nil {
		h.logger.Error("teacher create failed", zap.String("email", teacher.Email), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("teacher created",
		zap.String("email", teacher.Email), zap.String("branch", teacher.Branch))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teachers.All()
	if err != nil {
		h.logger.Error("teacher list failed", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Branch   string  `json:"branch"`
		Salary   float64 `json:"salary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name, email and branch required")
		return
	}

	teacher := entity.Teacher{
		ID:     id,
		Name:   req.Name,
		Email:  strings.ToLower(req.Email),
		Branch: req.Branch,
		Salary: req.Salary,
	}
	if req.Password != "" {
		hash, err := auth.HashSecret(req.Password)
		if err != nil {
			h.logger.Error("password hash failed", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		teacher.PasswordHash = hash
	}

	updated, err := h.teachers.Update(&teacher)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Teacher not found")
			return
		}
		h.logger.Error("teacher update failed", zap.Int("id", id), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	name, err := h.teachers.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Teacher not found")
			return
		}
		h.logger.Error("teacher delete failed", zap.Int("id", id), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("teacher deleted", zap.String("name", name))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
