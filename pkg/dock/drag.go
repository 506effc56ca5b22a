package dock

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// State is a phase of a drag operation.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateDropping
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateDropping:
		return "dropping"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Candidate is a drop target offered to [Drag.Move] together with the
// structural facts the resolver needs about it.
type Candidate struct {
	Target      Target
	CanSplit    bool
	HasTitleBar bool
}

// Drop is the outcome of a finished drag.
type Drop struct {
	Source string
	Anchor Anchor
}

// Drag tracks one drag-to-dock gesture.
//
// Dropping and Cancelled are transient: Drop and Cancel pass through them
// and settle back in Idle before returning. Only the anchor of the latest
// Move is remembered; the resolver itself is consulted fresh on every move.
type Drag struct {
	resolver *Resolver
	ghost    Ghost
	logger   *log.Logger

	state  State
	source string
	anchor Anchor
	hit    bool

	onTransition func(from, to State)
}

// DragOption configures a [Drag].
type DragOption func(*Drag)

// WithGhost sets the sink that receives every resolved anchor.
func WithGhost(g Ghost) DragOption { return func(d *Drag) { d.ghost = g } }

// WithDragLogger sets the logger for state transitions.
func WithDragLogger(l *log.Logger) DragOption {
	return func(d *Drag) {
		if l != nil {
			d.logger = l
		}
	}
}

// OnTransition registers fn to observe every state change.
func OnTransition(fn func(from, to State)) DragOption {
	return func(d *Drag) { d.onTransition = fn }
}

// NewDrag creates an idle drag driven by r.
func NewDrag(r *Resolver, opts ...DragOption) *Drag {
	if r == nil {
		r = NewResolver(0)
	}
	d := &Drag{resolver: r, logger: log.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current phase.
func (d *Drag) State() State { return d.state }

// Source returns the frame the drag started from.
func (d *Drag) Source() string { return d.source }

// Anchor returns the anchor found by the latest move, if any.
func (d *Drag) Anchor() (Anchor, bool) { return d.anchor, d.hit }

func (d *Drag) transition(to State) {
	from := d.state
	d.state = to
	d.logger.Debug("drag transition", "source", d.source, "from", from, "to", to)
	if d.onTransition != nil {
		d.onTransition(from, to)
	}
}

func (d *Drag) require(want State, op string) error {
	if d.state != want {
		return errors.New(errors.ErrCodeInvalidTransition, "cannot %s while %s", op, d.state)
	}
	return nil
}

// Begin starts dragging the frame identified by source.
func (d *Drag) Begin(source string) error {
	if err := d.require(StateIdle, "begin"); err != nil {
		return err
	}
	d.source = source
	d.anchor, d.hit = Anchor{}, false
	d.transition(StateDragging)
	return nil
}

// Move evaluates the pointer against the candidates in order and returns the
// first anchor found. A candidate whose target ID equals the drag source is
// tested as the same frame. A miss clears the remembered anchor.
func (d *Drag) Move(pointer geom.Point, candidates []Candidate) (Anchor, bool, error) {
	if err := d.require(StateDragging, "move"); err != nil {
		return Anchor{}, false, err
	}
	for _, c := range candidates {
		same := c.Target.ID == d.source
		a, ok := d.resolver.Resolve(pointer, same, c.CanSplit, c.Target, c.HasTitleBar)
		if !ok {
			continue
		}
		if d.ghost != nil {
			d.ghost.Anchor(pointer, a)
		}
		d.anchor, d.hit = a, true
		return a, true, nil
	}
	d.anchor, d.hit = Anchor{}, false
	return Anchor{}, false, nil
}

// Drop releases the pointer. With an anchor in hand the drag passes through
// Dropping and the drop is returned for the host to apply. Without one the
// drag is cancelled and ok is false.
func (d *Drag) Drop() (drop Drop, ok bool, err error) {
	if err := d.require(StateDragging, "drop"); err != nil {
		return Drop{}, false, err
	}
	if !d.hit {
		d.cancel()
		return Drop{}, false, nil
	}
	drop = Drop{Source: d.source, Anchor: d.anchor}
	d.transition(StateDropping)
	d.reset()
	return drop, true, nil
}

// Cancel abandons the drag.
func (d *Drag) Cancel() error {
	if err := d.require(StateDragging, "cancel"); err != nil {
		return err
	}
	d.cancel()
	return nil
}

func (d *Drag) cancel() {
	d.transition(StateCancelled)
	d.reset()
}

func (d *Drag) reset() {
	d.anchor, d.hit = Anchor{}, false
	d.transition(StateIdle)
	d.source = ""
}
