package entity

import "time"

// CurriculumEntry maps a (branch, semester) pair to its subject list.
// More than one row can exist for the same pair; readers deduplicate.
type CurriculumEntry struct {
	ID        int       `json:"id"`
	Branch    string    `json:"branch"`
	Semester  string    `json:"semester"`
	Subjects  []string  `json:"subjects"`
	CreatedAt time.Time `json:"createdAt"`
}
