package swap

import "slot-swapper/internal/pkg/errs"

type Status uint8

const (
	StatusPending Status = iota + 1
	StatusAccepted
	StatusRejected
)

var statusNames = map[Status]string{
	StatusPending:  "PENDING",
	StatusAccepted: "ACCEPTED",
	StatusRejected: "REJECTED",
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, errs.Wrap(errs.ErrInvalidInput, "unknown swap status "+s)
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

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Reason records why a request left PENDING.
type Reason string

const (
	ReasonAccepted        Reason = "accepted"
	ReasonRejected        Reason = "rejected"
	ReasonCancelled       Reason = "cancelled"
	ReasonSlotUnavailable Reason = "slot-unavailable"
	ReasonExpired         Reason = "expired"
)

// Outcome returns the terminal status implied by r.
func (r Reason) Outcome() Status {
	if r == ReasonAccepted {
		return StatusAccepted
	}
	return StatusRejected
}
