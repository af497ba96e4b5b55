package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"collegeerp/internal/entity"
	middleware "collegeerp/internal/midlleware"
	"collegeerp/internal/repository"

	"go.uber.org/zap"
)

type ClassStore interface {
	ByTeacher(teacherID int) ([]entity.ClassSession, error)
	Create(c *entity.ClassSession) error
	OwnedBy(classID, teacherID int) (bool, error)
	AddStudents(classID int, studentIDs []int) error
}

type ClassHandler struct {
	classes  ClassStore
	teachers TeacherStore
	students StudentStore
	logger   *zap.Logger
}

func NewClassHandler(classes ClassStore, teachers TeacherStore, students StudentStore, logger *zap.Logger) *ClassHandler {
	return &ClassHandler{classes: classes, teachers: teachers, students: students, logger: logger}
}

func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	if _, err := h.teachers.FindByID(claims.AccountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Teacher not found")
			return
		}
		h.logger.Error("teacher lookup failed", zap.Int("id", claims.AccountID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	classes, err := h.classes.ByTeacher(claims.AccountID)
	if err != nil {
		h.logger.Error("class list failed", zap.Int("teacherId", claims.AccountID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, classes)
}

func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	var req struct {
		Name      string `json:"name"`
		Branch    string `json:"branch"`
		Semester  string `json:"semester"`
		Subject   string `json:"subject"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "All fields required")
		return
	}

	if req.Name == "" || req.Branch == "" || req.Semester == "" || req.StartTime == "" || req.EndTime == "" {
		writeMessage(w, http.StatusBadRequest, "All fields required")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid time format")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid time format")
		return
	}

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

	// A teacher only schedules classes inside their own branch.
	if teacher.Branch != req.Branch {
		writeMessage(w, http.StatusForbidden, "Invalid branch for teacher")
		return
	}

	class := entity.ClassSession{
		Name:      req.Name,
		Branch:    req.Branch,
		Semester:  req.Semester,
		Subject:   req.Subject,
		TeacherID: claims.AccountID,
		StartTime: start,
		EndTime:   end,
		Students:  make([]entity.ClassStudent, 0),
	}
	if err := h.classes.Create(&class); err != nil {
		h.logger.Error("class create failed", zap.String("name", class.Name), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	// The roster is the branch/semester cohort at creation time.
	enrolled, err := h.students.ByBranchSemester(req.Branch, req.Semester)
	if err != nil {
		h.logger.Error("roster lookup failed", zap.Int("classId", class.ID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	ids := make([]int, 0, len(enrolled))
	for _, s := range enrolled {
		ids = append(ids, s.ID)
		class.Students = append(class.Students, entity.ClassStudent{
			ID: s.ID, Name: s.Name, RollNo: s.RollNo, Semester: s.Semester,
		})
	}
	if err := h.classes.AddStudents(class.ID, ids); err != nil {
		h.logger.Error("roster enroll failed", zap.Int("classId", class.ID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	h.logger.Info("class created",
		zap.String("name", class.Name), zap.String("teacher", teacher.Name))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "class": class})
}

// Attendance acknowledges a submitted attendance sheet after checking
// class ownership. The sheet itself is not persisted.
func (h *ClassHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	h.acknowledge(w, r, "Attendance saved successfully")
}

// Marks acknowledges a submitted marks sheet after checking class
// ownership. The sheet itself is not persisted.
func (h *ClassHandler) Marks(w http.ResponseWriter, r *http.Request) {
	h.acknowledge(w, r, "Marks saved successfully")
}

func (h *ClassHandler) acknowledge(w http.ResponseWriter, r *http.Request, message string) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	classID, err := strconv.Atoi(r.PathValue("classId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var sheet map[string]any
	if err := json.NewDecoder(r.Body).Decode(&sheet); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	owned, err := h.classes.OwnedBy(classID, claims.AccountID)
	if err != nil {
		h.logger.Error("class ownership check failed", zap.Int("classId", classID), zap.Error(err))
		writeMessage(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	if !owned {
		writeMessage(w, http.StatusNotFound, "Class not found")
		return
	}

	h.logger.Info("class sheet submitted",
		zap.Int("classId", classID), zap.Int("students", len(sheet)))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
}
