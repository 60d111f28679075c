package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/ramp/internal/logging"
	"github.com/aretw0/ramp/pkg/domain"
)

// Dispatcher is the producer/consumer boundary between front ends and the
// engine. Many producers submit commands concurrently; a single consumer
// goroutine applies them strictly in enqueue order, and each result is
// delivered to its producer only after apply/invalidate completes.
//
// Close ends the dispatcher's lifetime; submitting afterwards is a caller
// bug, same as sending on a closed channel.
type Dispatcher struct {
	engine *Engine
	logger *slog.Logger

	cmds chan command
	done chan struct{}
	once sync.Once
}

type cmdKind int

const (
	cmdApply cmdKind = iota
	cmdUndo
	cmdRedo
)

type command struct {
	kind  cmdKind
	op    domain.Operation
	reply chan result
}

type result struct {
	summary domain.Summary
	err     error
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets a structured logger for the consumer loop.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher starts the consumer goroutine over the given engine.
// buffer bounds how many commands may queue before producers block.
func NewDispatcher(e *Engine, buffer int, opts ...DispatcherOption) *Dispatcher {
	if buffer < 0 {
		buffer = 0
	}
	d := &Dispatcher{
		engine: e,
		logger: logging.NewNop(),
		cmds:   make(chan command, buffer),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.consume()
	return d
}

func (d *Dispatcher) consume() {
	defer close(d.done)
	for cmd := range d.cmds {
		var res result
		switch cmd.kind {
		case cmdApply:
			res.summary, res.err = d.engine.Apply(cmd.op)
		case cmdUndo:
			res.err = d.engine.Undo()
		case cmdRedo:
			res.err = d.engine.Redo()
		}
		if res.err != nil {
			d.logger.Debug("command failed", "err", res.err)
		}
		cmd.reply <- res
	}
}

// Apply submits an operation and blocks until it has been applied (or
// rejected) by the consumer.
func (d *Dispatcher) Apply(ctx context.Context, op domain.Operation) (domain.Summary, error) {
	res, err := d.submit(ctx, command{kind: cmdApply, op: op})
	if err != nil {
		return domain.Summary{}, err
	}
	return res.summary, res.err
}

// Undo submits an undo command.
func (d *Dispatcher) Undo(ctx context.Context) error {
	res, err := d.submit(ctx, command{kind: cmdUndo})
	if err != nil {
		return err
	}
	return res.err
}

// Redo submits a redo command.
func (d *Dispatcher) Redo(ctx context.Context) error {
	res, err := d.submit(ctx, command{kind: cmdRedo})
	if err != nil {
		return err
	}
	return res.err
}

func (d *Dispatcher) submit(ctx context.Context, cmd command) (result, error) {
	// Buffered so the consumer never blocks delivering a result the
	// producer stopped waiting for.
	cmd.reply = make(chan result, 1)

	select {
	case d.cmds <- cmd:
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-d.done:
		return result{}, context.Canceled
	}

	select {
	case res := <-cmd.reply:
		return res, nil
	case <-ctx.Done():
		// The command is already enqueued and will still be applied in
		// order; only this caller stops waiting for the outcome.
		return result{}, ctx.Err()
	}
}

// Close stops accepting commands and waits for the consumer to drain the
// queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.cmds)
	})
	<-d.done
}
