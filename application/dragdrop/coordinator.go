// Package dragdrop tracks an in-progress manual drag of an event toward a
// timeline drop target. The coordinator is a pure state machine over screen
// coordinates; only a successful drop on a target reaches persistence, via
// the injected associator.
package dragdrop

import "context"

// Point is a screen-space position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the bounding rectangle of a registered drop zone
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point is inside the rectangle. Edges count
// as inside so a drop exactly on the border still hits.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Associator is the slice of the association engine the coordinator needs
type Associator interface {
	AddEventToTimeline(ctx context.Context, eventID, timelineID string) error
}

// State is the coordinator's current phase
type State int

const (
	// Idle means no drag is active
	Idle State = iota
	// Pressed means the pointer is down but has not moved past the threshold
	Pressed
	// Dragging means an event is being dragged
	Dragging
)

// OutcomeKind classifies how a drag ended
type OutcomeKind int

const (
	// OutcomeNone: the release did not end an active drag
	OutcomeNone OutcomeKind = iota
	// OutcomeDropped: released over a drop zone; the association was made
	OutcomeDropped
	// OutcomeReturned: released outside every zone; the dragged element
	// animates back to Origin and nothing is persisted
	OutcomeReturned
)

// Outcome describes the end of a drag
type Outcome struct {
	Kind       OutcomeKind
	TimelineID string
	Origin     Point
}

// Coordinator implements the drag state machine:
// Idle -> Dragging -> Idle, with the drop-on-target path invoking the
// associator exactly once. There is no cancel gesture; any release ends
// the drag.
type Coordinator struct {
	associator Associator
	threshold  float64

	state    State
	eventID  string
	origin   Point
	zones    map[string]Rect
	hovering string
}

// NewCoordinator creates a coordinator. threshold is the pointer travel
// distance, in the same units as Point, that turns a press into a drag.
func NewCoordinator(associator Associator, threshold float64) *Coordinator {
	return &Coordinator{
		associator: associator,
		threshold:  threshold,
		zones:      make(map[string]Rect),
	}
}

// SetDropZone registers or moves a timeline's drop target rectangle
func (c *Coordinator) SetDropZone(timelineID string, bounds Rect) {
	c.zones[timelineID] = bounds
}

// RemoveDropZone unregisters a drop target
func (c *Coordinator) RemoveDropZone(timelineID string) {
	delete(c.zones, timelineID)
	if c.hovering == timelineID {
		c.hovering = ""
	}
}

// State returns the current phase
func (c *Coordinator) State() State {
	return c.state
}

// Hovering returns the drop zone currently under the pointer, if any. Only
// meaningful while dragging; consumed by the UI for visual feedback.
func (c *Coordinator) Hovering() (string, bool) {
	return c.hovering, c.hovering != ""
}

// Press records pointer-down on a draggable event item
func (c *Coordinator) Press(eventID string, at Point) {
	if c.state != Idle || eventID == "" {
		return
	}
	c.state = Pressed
	c.eventID = eventID
	c.origin = at
}

// Move advances the pointer. A press becomes a drag once travel exceeds
// the threshold; while dragging, every move hit-tests the registered drop
// zones and updates the hovering flag.
func (c *Coordinator) Move(at Point) {
	switch c.state {
	case Pressed:
		dx := at.X - c.origin.X
		dy := at.Y - c.origin.Y
		if dx*dx+dy*dy >= c.threshold*c.threshold {
			c.state = Dragging
			c.hitTest(at)
		}
	case Dragging:
		c.hitTest(at)
	}
}

// Release ends the interaction. Over a zone it synchronously invokes the
// associator and reports OutcomeDropped; anywhere else it reports
// OutcomeReturned with the origin for the return animation. An associator
// failure still ends the drag; the error propagates, nothing is retried.
func (c *Coordinator) Release(ctx context.Context, at Point) (Outcome, error) {
	defer c.reset()

	if c.state != Dragging {
		return Outcome{Kind: OutcomeNone}, nil
	}

	c.hitTest(at)
	if c.hovering == "" {
		return Outcome{Kind: OutcomeReturned, Origin: c.origin}, nil
	}

	target := c.hovering
	if err := c.associator.AddEventToTimeline(ctx, c.eventID, target); err != nil {
		return Outcome{Kind: OutcomeReturned, Origin: c.origin}, err
	}

	return Outcome{Kind: OutcomeDropped, TimelineID: target}, nil
}

func (c *Coordinator) hitTest(at Point) {
	c.hovering = ""
	for timelineID, bounds := range c.zones {
		if bounds.Contains(at) {
			c.hovering = timelineID
			return
		}
	}
}

func (c *Coordinator) reset() {
	c.state = Idle
	c.eventID = ""
	c.origin = Point{}
	c.hovering = ""
}
