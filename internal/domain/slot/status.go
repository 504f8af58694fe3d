package slot

import (
	"slot-swapper/internal/pkg/errs"
)

type Status uint8

const (
	StatusBusy Status = iota + 1
	StatusSwappable
	StatusSwapPending
)

var statusNames = map[Status]string{
	StatusBusy:        "BUSY",
	StatusSwappable:   "SWAPPABLE",
	StatusSwapPending: "SWAP_PENDING",
}

// transitions is the full edge set of the slot lifecycle.
var transitions = map[Status][]Status{
	StatusBusy:        {StatusSwappable},
	StatusSwappable:   {StatusSwapPending},
	StatusSwapPending: {StatusBusy, StatusSwappable},
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, errs.Wrap(errs.ErrInvalidInput, "unknown slot status "+s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func AllStatuses() []Status {
	return []Status{StatusBusy, StatusSwappable, StatusSwapPending}
}
