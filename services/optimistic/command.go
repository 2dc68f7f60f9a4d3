package optimistic

import (
	"context"
	"fmt"

	"beu/utils"

	"go.uber.org/zap"
)

// Command is a local state change that can be reverted.
type Command interface {
	Name() string
	Apply(ctx context.Context) error
	Undo(ctx context.Context) error
}

// RemoteFunc confirms a command against the backend.
type RemoteFunc func(ctx context.Context) error

// Funcs adapts a pair of closures to Command.
type Funcs struct {
	Label   string
	ApplyFn func(ctx context.Context) error
	UndoFn  func(ctx context.Context) error
}

func (f Funcs) Name() string { return f.Label }

func (f Funcs) Apply(ctx context.Context) error {
	if f.ApplyFn == nil {
		return nil
	}
	return f.ApplyFn(ctx)
}

func (f Funcs) Undo(ctx context.Context) error {
	if f.UndoFn == nil {
		return nil
	}
	return f.UndoFn(ctx)
}

// Run applies cmd locally, then calls remote. When remote fails the command is
// undone and the remote error returned; there is no retry. Undo runs on a
// context detached from cancellation so a dropped client still rolls back.
func Run(ctx context.Context, logger *zap.Logger, cmd Command, remote RemoteFunc) error {
	if err := cmd.Apply(ctx); err != nil {
		return fmt.Errorf("%s: apply failed: %w", cmd.Name(), err)
	}
	remoteErr := remote(ctx)
	if remoteErr == nil {
		return nil
	}

	utils.RecordRollback(cmd.Name())
	if err := cmd.Undo(context.WithoutCancel(ctx)); err != nil {
		logger.Error("Optimistic rollback failed",
			zap.String("command", cmd.Name()),
			zap.NamedError("remoteError", remoteErr),
			zap.Error(err),
		)
	} else {
		logger.Warn("Optimistic update rolled back",
			zap.String("command", cmd.Name()),
			zap.Error(remoteErr),
		)
	}
	return remoteErr
}
