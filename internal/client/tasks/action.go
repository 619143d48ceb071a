package tasks

import "context"

// RefreshPolicy decides whether the list is refetched after a mutation.
type RefreshPolicy int

const (
	// RefreshAlways refetches regardless of the mutation outcome.
	RefreshAlways RefreshPolicy = iota
	// RefreshOnSuccess refetches only if the mutation succeeded.
	RefreshOnSuccess
)

// Action is a server mutation followed by a list refresh.
type Action struct {
	Name   string
	Mutate func(ctx context.Context) error
	Policy RefreshPolicy
}

// Result reports both phases of an Action separately.
type Result struct {
	MutateErr  error
	RefreshErr error
	Refreshed  bool
}

func (r Result) OK() bool {
	return r.MutateErr == nil
}

func (a Action) shouldRefresh(mutateErr error) bool {
	switch a.Policy {
	case RefreshOnSuccess:
		return mutateErr == nil
	default:
		return true
	}
}
