package entity

import "time"

type ClassSession struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Branch    string         `json:"branch"`
	Semester  string         `json:"semester"`
	Subject   string         `json:"subject,omitempty"`
	TeacherID int            `json:"teacherId"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Students  []ClassStudent `json:"students"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ClassStudent is the roster view of a student, without credentials.
type ClassStudent struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RollNo   string `json:"rollNo"`
	Semester string `json:"semester"`
}
