package optimize

// Status is the lifecycle state of a candidate configuration. Candidates
// start at StatusInit and cycle through Solving, Checking, and Resizing
// until they reach one of the three terminal states.
type Status int

const (
	// StatusInit marks a candidate not yet evaluated.
	StatusInit Status = iota
	// StatusSolving marks a candidate whose load cases are being analyzed.
	StatusSolving
	// StatusChecking marks a candidate under compliance checking.
	StatusChecking
	// StatusResizing marks a candidate whose failing slots are being upsized.
	StatusResizing
	// StatusConverged marks a candidate whose self weight stabilized with
	// every compliance check passing.
	StatusConverged
	// StatusNonConvergent marks a candidate that hit the iteration cap
	// while still oscillating.
	StatusNonConvergent
	// StatusInvalid marks a candidate that cannot be completed: solver
	// failure, exhausted catalog, or excessive displacement.
	StatusInvalid
)

// Terminal reports whether the status is a final evaluation outcome.
func (s Status) Terminal() bool {
	return s == StatusConverged || s == StatusNonConvergent || s == StatusInvalid
}

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusSolving:
		return "solving"
	case StatusChecking:
		return "checking"
	case StatusResizing:
		return "resizing"
	case StatusConverged:
		return "converged"
	case StatusNonConvergent:
		return "non-convergent"
	case StatusInvalid:
		return "invalid"
	}
	return "unknown"
}
