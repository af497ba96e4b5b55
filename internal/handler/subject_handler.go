package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"collegeerp/internal/curriculum"
	"collegeerp/internal/entity"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
)

// CurriculumStore is the admin-facing side of the curriculum table.
type CurriculumStore interface {
	All() ([]entity.CurriculumEntry, error)
	Exists(branch, semester string) (bool, error)
	Create(branch, semester string, subjects []string) (*entity.CurriculumEntry, error)
	Update(id int, branch, semester string, subjects []string) (*entity.CurriculumEntry, error)
	Delete(id int) error
	Branches() ([]string, error)
}

type SubjectHandler struct {
	resolver *curriculum.Resolver
	store    CurriculumStore
	logger   *zap.Logger
}

func NewSubjectHandler(resolver *curriculum.Resolver, store CurriculumStore, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{resolver: resolver, store: store, logger: logger}
}

// Cascade answers the branch/semester subject lookup that record
// creation and the dependent selectors hang off. Without a semester the
// response also carries the raw per-semester entries.
func (h *SubjectHandler) Cascade(w http.ResponseWriter, r *http.Request) {
	branch := r.PathValue("branch")
	semester := r.PathValue("semester")

	subjects, total, err := h.resolver.Subjects(branch, semester)
	if err != nil {
		h.logger.Error("subject lookup failed", zap.String("branch", branch), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	response := map[string]any{
		"branch":   branch,
		"semester": semester,
		"subjects": subjects,
		"count":    total,
	}
	if semester == "" {
		response["semester"] = "All"
		entries, err := h.resolver.Entries(branch, "")
		if err != nil {
			writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
			return
		}
		response["entries"] = entries
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.All()
	if err != nil {
		h.logger.Error("subject list failed", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Branch   string `json:"branch"`
		Semester string `json:"semester"`
		Subjects any    `json:"subjects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Branch, semester, and subjects required")
		return
	}

	branch := strings.TrimSpace(req.Branch)
	semester := strings.TrimSpace(req.Semester)
	if branch == "" || semester == "" || req.Subjects == nil {
		writeMessage(w, http.StatusBadRequest, "Branch, semester, and subjects required")
		return
	}

	subjects := subjectList(req.Subjects)
	if len(subjects) == 0 {
		writeMessage(w, http.StatusBadRequest, "At least one subject required")
		return
	}

	// Check-then-insert: no unique index backs this, so a concurrent
	// create for the same pair can slip through. Readers deduplicate.
	exists, err := h.store.Exists(branch, semester)
	if err != nil {
		h.logger.Error("subject existence check failed", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message":  fmt.Sprintf("Subjects already exist for %s %s", branch, semester),
			"existing": true,
		})
		return
	}

	entry, err := h.store.Create(branch, semester, subjects)
	if err != nil {
		h.logger.Error("subject create failed", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("subjects created", zap.String("branch", branch),
		zap.String("semester", semester), zap.Strings("subjects", subjects))

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d subjects added for %s %s", len(subjects), branch, semester),
		"data":    entry,
	})
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req struct {
		Branch   string `json:"branch"`
		Semester string `json:"semester"`
		Subjects any    `json:"subjects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Branch, semester, and subjects required")
		return
	}

	entry, err := h.store.Update(id, req.Branch, req.Semester, subjectList(req.Subjects))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Subject not found")
			return
		}
		h.logger.Error("subject update failed", zap.Int("id", id), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": entry})
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Subject not found")
			return
		}
		h.logger.Error("subject delete failed", zap.Int("id", id), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("subject deleted", zap.Int("id", id))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Subject deleted successfully",
	})
}

func (h *SubjectHandler) Branches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.store.Branches()
	if err != nil {
		h.logger.Error("branch list failed", zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, branches)
}

// subjectList accepts either an array of names or a single
// comma-separated string, dropping blanks.
func subjectList(v any) []string {
	var raw []string

	switch s := v.(type) {
	case string:
		raw = strings.Split(s, ",")
	case []any:
		for _, item := range s {
			if str, ok := item.(string); ok {
				raw = append(raw, str)
			}
		}
	}

	subjects := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}

	return subjects
}
