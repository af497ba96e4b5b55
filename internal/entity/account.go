package entity

import "time"

// Kind is the store an account lives in. Login resolves identifiers in
// admin -> teacher -> student order, so an identifier duplicated across
// stores always gets the admin interpretation first.
type Kind string

const (
	KindAdmin   Kind = "admin"
	KindTeacher Kind = "teacher"
	KindStudent Kind = "student"
)

// Principal is the resolved owner of a credential, tagged with the kind
// of store it was found in.
type Principal struct {
	Kind         Kind
	ID           int
	Email        string
	PasswordHash string
	Name         string
	Branch       string
	Semester     string
	RollNo       string
	Salary       float64
}

type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Teacher struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Branch       string    `json:"branch"`
	Salary       float64   `json:"salary"`
	Subjects     []string  `json:"subjects"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Student struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RollNo       string    `json:"rollNo"`
	Branch       string    `json:"branch"`
	Semester     string    `json:"semester"`
	Subjects     []string  `json:"subjects"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
