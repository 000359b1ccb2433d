package timeline

import (
	"scenescribe/config"
	"scenescribe/timescale"
)

// gestureState is the interaction controller's state machine position.
type gestureState int

const (
	stateIdle gestureState = iota
	stateDragging
	stateResizing
)

// ResizeDirection selects which edge a resize gesture moves.
type ResizeDirection int

const (
	ResizeLeft ResizeDirection = iota
	ResizeRight
)

// Commit is an accepted structural change, expressed in milliseconds, ready
// to be written back to the scene model.
type Commit struct {
	ID      int
	StartMs int
	EndMs   int
}

// Controller translates pointer deltas into proposed positions for a single
// element and enforces container constraints on commit. Only one gesture may
// be live at a time: an active resize blocks drags and vice versa.
//
// Constraint violations are silent no-ops per the interaction layer's
// contract; rejected gestures simply don't change anything.
type Controller struct {
	state     gestureState
	active    Element
	container Container
	dir       ResizeDirection

	// proposed geometry in px, updated as deltas arrive
	position int
	width    int
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Idle reports whether no gesture is in progress.
func (c *Controller) Idle() bool {
	return c.state == stateIdle
}

// Dragging reports whether a drag gesture is live.
func (c *Controller) Dragging() bool {
	return c.state == stateDragging
}

// Resizing reports whether a resize gesture is live.
func (c *Controller) Resizing() bool {
	return c.state == stateResizing
}

// ActiveID returns the element id of the live gesture, or 0 when idle.
func (c *Controller) ActiveID() int {
	if c.state == stateIdle {
		return 0
	}
	return c.active.ID
}

// BeginDrag starts a drag on el within its container. Rejected when another
// gesture is live or the element is a fixed TALKING interval.
func (c *Controller) BeginDrag(el Element, container Container) bool {
	if c.state != stateIdle || el.IsTalking() {
		return false
	}
	c.state = stateDragging
	c.active = el
	c.container = container
	c.position = el.Position
	c.width = el.Width
	return true
}

// Drag applies a pointer delta to the proposed position. No boundary clamp is
// applied mid-gesture; the element may pass through its container visually.
func (c *Controller) Drag(deltaPx int) {
	if c.state != stateDragging {
		return
	}
	c.position += deltaPx
}

// Position returns the current proposed position for rendering.
func (c *Controller) Position() int {
	return c.position
}

// Width returns the current proposed width for rendering.
func (c *Controller) Width() int {
	return c.width
}

// EndDrag finishes the gesture and produces the commit. The final position is
// clamped into the container so the committed scene set stays non-overlapping
// even when the gesture overshot mid-flight.
func (c *Controller) EndDrag() (Commit, bool) {
	if c.state != stateDragging {
		return Commit{}, false
	}
	pos := clamp(c.position, c.container.StartPosition, c.container.End()-c.width)
	commit := Commit{
		ID:      c.active.ID,
		StartMs: timescale.PixelsToMs(pos),
		EndMs:   timescale.PixelsToMs(pos + c.width),
	}
	c.state = stateIdle
	return commit, true
}

// BeginResize starts a resize on el's edge. Rejected when another gesture is
// live, the element is TALKING, or the container can't fit the minimum width.
func (c *Controller) BeginResize(el Element, container Container, dir ResizeDirection) bool {
	if c.state != stateIdle || el.IsTalking() {
		return false
	}
	if container.Width < config.MinSceneWidthPx {
		return false
	}
	c.state = stateResizing
	c.active = el
	c.container = container
	c.dir = dir
	c.position = el.Position
	c.width = el.Width
	return true
}

// Resize applies a pointer delta to the live edge and returns the resulting
// commit. The 50px minimum width is a hard floor; the container end is the
// hard ceiling. Commits arrive continuously during the gesture, matching the
// write-through-on-every-move behavior of the resize handle.
func (c *Controller) Resize(deltaPx int) (Commit, bool) {
	if c.state != stateResizing {
		return Commit{}, false
	}

	switch c.dir {
	case ResizeRight:
		proposedRight := c.position + c.width + deltaPx
		newWidth := proposedRight - c.position
		if newWidth < config.MinSceneWidthPx {
			newWidth = config.MinSceneWidthPx
		}
		if max := c.container.End() - c.position; newWidth > max {
			newWidth = max
		}
		c.width = newWidth
	case ResizeLeft:
		right := c.position + c.width
		newPos := clamp(c.position+deltaPx, c.container.StartPosition, right-config.MinSceneWidthPx)
		c.position = newPos
		c.width = right - newPos
	}

	return Commit{
		ID:      c.active.ID,
		StartMs: timescale.PixelsToMs(c.position),
		EndMs:   timescale.PixelsToMs(c.position + c.width),
	}, true
}

// EndResize returns the controller to idle.
func (c *Controller) EndResize() {
	if c.state == stateResizing {
		c.state = stateIdle
	}
}

// Refresh updates the gesture's view of its element and container after the
// scene model recomputed boundaries mid-gesture (resize commits write through
// continuously).
func (c *Controller) Refresh(containers []Container) {
	if c.state == stateIdle {
		return
	}
	if cont, ok := ContainerFor(containers, c.active.ID); ok {
		c.container = cont
		c.active = cont.Element
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
