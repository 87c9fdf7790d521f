package storage

import "context"

// Selections is the last-used form state, restored as defaults on the
// next run. Plain JSON with no versioning; a shape change simply resets
// the saved record.
type Selections struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	CoachID              int    `json:"coachId"`
	CoachName            string `json:"coachName"`
	ProgramName          string `json:"programName"`
	ProgramType          string `json:"programType"`
	ProgramDuration      string `json:"programDuration"`
	ProgramActiveDate    string `json:"programActiveDate"`
	ProgramCompletedDate string `json:"programCompletedDate"`
}

// SelectionsStorage persists the last-used form selections.
type SelectionsStorage interface {
	// SaveSelections stores the selections, replacing any previous record
	SaveSelections(ctx context.Context, sel *Selections) error

	// GetSelections retrieves the stored selections
	// Returns ErrSelectionsNotFound if nothing is stored
	GetSelections(ctx context.Context) (*Selections, error)
}
