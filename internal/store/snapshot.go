package store

// Snapshot is the result of a read over a full collection. Degraded
// distinguishes "genuinely empty" from "failed to load": the remote
// path downgrades backend failures to an empty snapshot with Degraded
// set instead of raising, so read paths never crash the caller.
type Snapshot[T any] struct {
	Items    []T    `json:"items"`
	Degraded bool   `json:"degraded,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Ok wraps a healthy snapshot.
func Ok[T any](items []T) Snapshot[T] {
	if items == nil {
		items = []T{}
	}
	return Snapshot[T]{Items: items}
}

// Degraded wraps the empty snapshot a failed read degrades to.
func Degraded[T any](reason string) Snapshot[T] {
	return Snapshot[T]{Items: []T{}, Degraded: true, Reason: reason}
}
