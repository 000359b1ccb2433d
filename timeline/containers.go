package timeline

// Container is the maximum pixel span an element's drag or resize may occupy
// without intruding on a neighbor.
type Container struct {
	ID            int
	StartPosition int
	Width         int
	Element       Element
}

// End returns the container's exclusive right edge in pixels.
func (c Container) End() int {
	return c.StartPosition + c.Width
}

// BuildContainers computes the bounding container for every element.
//
// TALKING elements are containers unto themselves: their own position and
// width define the container exactly, and they act as fixed obstacles for
// their neighbors. For every other element the container runs from the end of
// the nearest earlier element (or 0) to the start of the nearest later
// element (or the full timeline width).
//
// Any single structural change can move two neighbors' boundaries, so this is
// a full recomputation, called after every change to the element list.
func BuildContainers(elements []Element, timelineWidth int) []Container {
	sorted := make([]Element, len(elements))
	copy(sorted, elements)
	// BuildElements already sorts, but callers may hand us ad hoc slices.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Position < sorted[j-1].Position; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	containers := make([]Container, 0, len(sorted))
	for i, el := range sorted {
		if el.IsTalking() {
			containers = append(containers, Container{
				ID:            el.ID,
				StartPosition: el.Position,
				Width:         el.Width,
				Element:       el,
			})
			continue
		}

		prevBoundary := 0
		if i > 0 {
			prev := sorted[i-1]
			prevBoundary = prev.Position + prev.Width
		}

		nextBoundary := timelineWidth
		if i < len(sorted)-1 {
			nextBoundary = sorted[i+1].Position
		}

		start := prevBoundary
		if el.Position < start {
			start = el.Position
		}

		containers = append(containers, Container{
			ID:            el.ID,
			StartPosition: start,
			Width:         nextBoundary - start,
			Element:       el,
		})
	}
	return containers
}

// ContainerFor finds the container belonging to the element with the given id.
func ContainerFor(containers []Container, id int) (Container, bool) {
	for _, c := range containers {
		if c.ID == id {
			return c, true
		}
	}
	return Container{}, false
}
