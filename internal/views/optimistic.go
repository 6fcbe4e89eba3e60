package views

import "context"

// Optimistic applies a change locally before the server confirms it. Apply
// makes the tentative change and returns whatever Restore needs to undo it.
// When Commit fails, Restore runs and the commit error is returned.
type Optimistic[T any] struct {
	Apply   func() T
	Commit  func(ctx context.Context) error
	Restore func(prior T)
}

// Run performs the command.
func (o Optimistic[T]) Run(ctx context.Context) error {
	prior := o.Apply()
	if err := o.Commit(ctx); err != nil {
		o.Restore(prior)
		return err
	}
	return nil
}
