package curriculum

import "collegeerp/internal/entity"

// Store is the slice of the curriculum repository the resolver reads.
type Store interface {
	Entries(branch, semester string) ([]entity.CurriculumEntry, error)
}

// Resolver answers the branch/semester subject cascade. Because nothing
// stops two rows from sharing a (branch, semester) pair, it flattens all
// matching rows and drops duplicates, keeping first-seen order.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Entries returns the raw rows for a branch, optionally narrowed to one
// semester. Used to populate dependent semester selectors.
func (r *Resolver) Entries(branch, semester string) ([]entity.CurriculumEntry, error) {
	return r.store.Entries(branch, semester)
}

// Subjects returns the deduplicated union of subject names across every
// matching row, in the order they first appear, plus the raw occurrence
// count. No matching rows is not an error: the branch just has nothing
// configured yet.
func (r *Resolver) Subjects(branch, semester string) ([]string, int, error) {
	entries, err := r.store.Entries(branch, semester)
	if err != nil {
		return nil, 0, err
	}

	subjects := make([]string, 0)
	seen := make(map[string]struct{})
	total := 0

	for _, entry := range entries {
		for _, subject := range entry.Subjects {
			total++
			if _, ok := seen[subject]; ok {
				continue
			}
			seen[subject] = struct{}{}
			subjects = append(subjects, subject)
		}
	}

	return subjects, total, nil
}
