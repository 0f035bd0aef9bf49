package entity

// Status ciclo de vida común de las entidades publicables:
// draft → active → archived → deleted. Un archived puede reactivarse.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

// transitions tabla de transiciones permitidas. deleted es terminal.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusActive, StatusDeleted},
	StatusActive:   {StatusArchived, StatusDeleted},
	StatusArchived: {StatusActive, StatusDeleted},
}

// ParseStatus valida el string de entrada contra los estados conocidos.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusDraft, StatusActive, StatusArchived, StatusDeleted:
		return Status(s), true
	}
	return "", false
}

// CanTransition indica si el paso s → to está permitido.
func (s Status) CanTransition(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}
