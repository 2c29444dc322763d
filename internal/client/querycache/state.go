package querycache

import "time"

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is a read-only view of one cache entry.
type State struct {
	Key       string
	Status    Status
	Value     any
	HasValue  bool
	Err       error
	FetchedAt time.Time
	Stale     bool
}

func (s State) Loading() bool {
	return s.Status == StatusPending && !s.HasValue
}
