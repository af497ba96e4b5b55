package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"collegeerp/internal/auth"
	"collegeerp/internal/entity"
	middleware "collegeerp/internal/midlleware"

	"go.uber.org/zap"
)

type fakeClasses struct {
	classes []entity.ClassSession
	rosters map[int][]int
}

func (f *fakeClasses) ByTeacher(teacherID int) ([]entity.ClassSession, error) {
	matched := make([]entity.ClassSession, 0)
	for _, c := range f.classes {
		if c.TeacherID == teacherID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (f *fakeClasses) Create(c *entity.ClassSession) error {
	c.ID = len(f.classes) + 1
	f.classes = append(f.classes, *c)
	return nil
}

func (f *fakeClasses) OwnedBy(classID, teacherID int) (bool, error) {
	for _, c := range f.classes {
		if c.ID == classID && c.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClasses) AddStudents(classID int, studentIDs []int) error {
	if f.rosters == nil {
		f.rosters = make(map[int][]int)
	}
	f.rosters[classID] = append(f.rosters[classID], studentIDs...)
	return nil
}

func classTestServer(classes *fakeClasses, teachers TeacherStore, students StudentStore) (*http.ServeMux, *auth.TokenCodec) {
	h := NewClassHandler(classes, teachers, students, zap.NewNop())
	codec := auth.NewTokenCodec(testSecret, auth.SessionTTL)
	guard := middleware.RequireAuth(codec, zap.NewNop())

	mux := http.NewServeMux()
	mux.Handle("GET /api/classes", guard(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/classes", guard(http.HandlerFunc(h.Create)))
	mux.Handle("POST /api/attendance/{classId}", guard(http.HandlerFunc(h.Attendance)))
	mux.Handle("POST /api/marks/{classId}", guard(http.HandlerFunc(h.Marks)))
	return mux, codec
}

func teacherRequest(t *testing.T, codec *auth.TokenCodec, method, path, body string) *http.Request {
	t.Helper()
	token, err := codec.Issue(auth.Claims{AccountID: 7, Kind: entity.KindTeacher})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	return req
}

func TestClassCreateBranchMismatch(t *testing.T) {
	teachers := &fakeTeacherStore{teachers: map[int]*entity.Teacher{
		7: {ID: 7, Name: "Prof", Branch: "CSE"},
	}}
	classes := &fakeClasses{}
	mux, codec := classTestServer(classes, teachers, &fakeStudents{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "POST", "/api/classes",
		`{"name":"Algo","branch":"ECE","semester":"1st","startTime":"2026-09-01T09:00:00Z","endTime":"2026-09-01T10:00:00Z"}`))

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for foreign branch, got %d: %s", w.Code, w.Body.String())
	}
	if len(classes.classes) != 0 {
		t.Errorf("Expected no class created, got %v", classes.classes)
	}
}

func TestClassCreateAndList(t *testing.T) {
	teachers := &fakeTeacherStore{teachers: map[int]*entity.Teacher{
		7: {ID: 7, Name: "Prof", Branch: "CSE"},
	}}
	classes := &fakeClasses{}
	students := &fakeStudents{students: []entity.Student{
		{ID: 1, Name: "Asha", RollNo: "CSE-001", Branch: "CSE", Semester: "1st"},
		{ID: 2, Name: "Ravi", RollNo: "ECE-001", Branch: "ECE", Semester: "1st"},
	}, nextID: 2}
	mux, codec := classTestServer(classes, teachers, students)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "POST", "/api/classes",
		`{"name":"Algo","branch":"CSE","semester":"1st","subject":"DBMS","startTime":"2026-09-01T09:00:00Z","endTime":"2026-09-01T10:00:00Z"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(classes.classes) != 1 || classes.classes[0].TeacherID != 7 {
		t.Fatalf("Expected class owned by teacher 7, got %v", classes.classes)
	}

	// The CSE 1st cohort is enrolled on creation, the ECE student is not.
	if roster := classes.rosters[1]; len(roster) != 1 || roster[0] != 1 {
		t.Errorf("Expected roster [1], got %v", roster)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "GET", "/api/classes", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"name":"Algo"`) {
		t.Errorf("Expected created class in listing: %s", w.Body.String())
	}
}

func TestClassCreateValidation(t *testing.T) {
	teachers := &fakeTeacherStore{teachers: map[int]*entity.Teacher{
		7: {ID: 7, Name: "Prof", Branch: "CSE"},
	}}
	mux, codec := classTestServer(&fakeClasses{}, teachers, &fakeStudents{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "POST", "/api/classes", `{"name":"Algo"}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing fields, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "POST", "/api/classes",
		`{"name":"Algo","branch":"CSE","semester":"1st","startTime":"tomorrow","endTime":"later"}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad timestamps, got %d", w.Code)
	}
}

func TestAttendanceOwnershipCheck(t *testing.T) {
	teachers := &fakeTeacherStore{teachers: map[int]*entity.Teacher{
		7: {ID: 7, Name: "Prof", Branch: "CSE"},
	}}
	classes := &fakeClasses{classes: []entity.ClassSession{
		{ID: 1, Name: "Algo", TeacherID: 7},
		{ID: 2, Name: "Other", TeacherID: 8},
	}}
	mux, codec := classTestServer(classes, teachers, &fakeStudents{})

	// Own class: acknowledged.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "POST", "/api/attendance/1", `{"1":"present"}`))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for own class, got %d: %s", w.Code, w.Body.String())
	}

	// Someone else's class looks like it does not exist.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, teacherRequest(t, codec, "POST", "/api/marks/2", `{"1":85}`))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for foreign class, got %d", w.Code)
	}
}
