package domain

// Status represents document lifecycle states.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusIssued    Status = "ISSUED"
	StatusPrinted   Status = "PRINTED"
	StatusSent      Status = "SENT"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPrinted, StatusSent, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Editable reports whether the document's content may still change.
func (s Status) Editable() bool {
	return s == StatusDraft
}

// Deletable reports whether the document may be removed.
func (s Status) Deletable() bool {
	return s == StatusDraft || s == StatusCancelled
}

// Printable reports whether the document may be printed. Drafts are not
// printable: a document must be issued first.
func (s Status) Printable() bool {
	switch s {
	case StatusIssued, StatusPrinted, StatusSent, StatusPaid:
		return true
	}
	return false
}

// Sendable reports whether the document may be sent to the subject.
func (s Status) Sendable() bool {
	return s == StatusIssued || s == StatusPrinted
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCancelled
}

// Next returns the natural next state. Paid and Cancelled have none and
// return themselves.
func (s Status) Next() Status {
	switch s {
	case StatusDraft:
		return StatusIssued
	case StatusIssued:
		return StatusPrinted
	case StatusPrinted:
		return StatusSent
	case StatusSent:
		return StatusPaid
	default:
		return s
	}
}

// CanTransitionTo reports whether target is reachable from s: either
// the natural next state, or Cancelled from any non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Terminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	return target != s && target == s.Next()
}
