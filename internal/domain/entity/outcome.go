package entity

// OutcomeKind tags how a backend call ended.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeNotFound
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Outcome is the tagged result of one backend call: Ok(payload) | NotFound | Error(detail).
type Outcome[T any] struct {
	Kind    OutcomeKind
	Payload T
	Err     error
}

// Ok wraps a payload.
func Ok[T any](payload T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeOK, Payload: payload}
}

// NotFound reports that the backend holds nothing for the request.
func NotFound[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeNotFound, Err: err}
}

// Failed reports a transport or server failure.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeError, Err: err}
}

func (o Outcome[T]) IsOK() bool { return o.Kind == OutcomeOK }
