package errs

// Kind classifies a failure for the transport layer.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindAuthorization Kind = "AUTHORIZATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindConflict      Kind = "CONFLICT"
)

// Conflict reasons. Only ErrSlotUnavailable, lost lock contention, may be
// retried; ErrSlotNotOffered shares its reason but is permanent.
const (
	ReasonSlotUnavailable   = "slot-unavailable"
	ReasonLocked            = "locked"
	ReasonInvalidTransition = "invalid-transition"
	ReasonAlreadyResolved   = "already-resolved"
	ReasonSelfSwap          = "self-swap"
)

type DomainError struct {
	kind   Kind
	reason string
	msg    string
}

func (e *DomainError) Error() string  { return e.msg }
func (e *DomainError) Kind() Kind      { return e.kind }
func (e *DomainError) Reason() string  { return e.reason }
func (e *DomainError) Retryable() bool { return e == ErrSlotUnavailable }

func newDomainError(kind Kind, reason, msg string) *DomainError {
	return &DomainError{kind: kind, reason: reason, msg: msg}
}

var (
	// Validation
	ErrInvalidInput     = newDomainError(KindValidation, "invalid-input", "invalid input")
	ErrInvalidTimeRange = newDomainError(KindValidation, "invalid-time-range", "invalid time range")
	ErrSlotOverlap      = newDomainError(KindValidation, "overlap", "slot overlaps an existing slot")
	ErrEmailTaken       = newDomainError(KindValidation, "email-taken", "email already registered")

	// Authorization
	ErrNotOwner           = newDomainError(KindAuthorization, "not-owner", "actor does not own the referenced entity")
	ErrInvalidCredentials = newDomainError(KindAuthorization, "invalid-credentials", "invalid email or password")

	// Not found
	ErrSlotNotFound        = newDomainError(KindNotFound, "slot-not-found", "slot not found")
	ErrSwapRequestNotFound = newDomainError(KindNotFound, "swap-request-not-found", "swap request not found")
	ErrUserNotFound        = newDomainError(KindNotFound, "user-not-found", "user not found")

	// Conflict
	ErrSlotUnavailable   = newDomainError(KindConflict, ReasonSlotUnavailable, "slot is not available for swapping")
	ErrSlotNotOffered    = newDomainError(KindConflict, ReasonSlotUnavailable, "slot is not offered for swapping")
	ErrSlotLocked        = newDomainError(KindConflict, ReasonLocked, "slot is locked by a pending swap")
	ErrInvalidTransition = newDomainError(KindConflict, ReasonInvalidTransition, "invalid status transition")
	ErrAlreadyResolved   = newDomainError(KindConflict, ReasonAlreadyResolved, "swap request already resolved")
	ErrSelfSwap          = newDomainError(KindConflict, ReasonSelfSwap, "cannot swap with your own slot")
)

// Detailed is implemented by errors that carry a structured payload for clients.
type Detailed interface {
	Detail() any
}

func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the taxonomy kind of err, or "" for infrastructure failures.
func KindOf(err error) Kind {
	if de, ok := AsDomain(err); ok {
		return de.kind
	}
	return ""
}

func ReasonOf(err error) string {
	if de, ok := AsDomain(err); ok {
		return de.reason
	}
	return ""
}

func IsRetryable(err error) bool {
	return Is(err, ErrSlotUnavailable)
}

func DetailOf(err error) any {
	var d Detailed
	if As(err, &d) {
		return d.Detail()
	}
	return nil
}
