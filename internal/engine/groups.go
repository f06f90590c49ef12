package engine

import "time"

// seqNode runs children in order. The next child begins in the same turn
// the previous one finishes.
type seqNode struct {
	children []node
	idx      int
}

func (n *seqNode) begin(rt *runtime, now time.Time) (bool, error) {
	n.idx = 0
	return n.enter(rt, now)
}

func (n *seqNode) enter(rt *runtime, now time.Time) (bool, error) {
	for n.idx < len(n.children) {
		done, err := n.children[n.idx].begin(rt, now)
		if err != nil || !done {
			return false, err
		}
		n.idx++
	}
	return true, nil
}

func (n *seqNode) advance(rt *runtime, now time.Time) (bool, error) {
	if n.idx >= len(n.children) {
		return true, nil
	}
	done, err := n.children[n.idx].advance(rt, now)
	if err != nil || !done {
		return false, err
	}
	n.idx++
	return n.enter(rt, now)
}

func (n *seqNode) wake() (time.Time, bool) {
	if n.idx >= len(n.children) {
		return time.Time{}, false
	}
	return n.children[n.idx].wake()
}

// parNode begins every child in the same turn and finishes with the last.
type parNode struct {
	children  []node
	done      []bool
	remaining int
}

func (n *parNode) begin(rt *runtime, now time.Time) (bool, error) {
	n.done = make([]bool, len(n.children))
	n.remaining = len(n.children)
	for i, c := range n.children {
		done, err := c.begin(rt, now)
		if err != nil {
			return false, err
		}
		if done {
			n.done[i] = true
			n.remaining--
		}
	}
	return n.remaining == 0, nil
}

func (n *parNode) advance(rt *runtime, now time.Time) (bool, error) {
	for i, c := range n.children {
		if n.done[i] {
			continue
		}
		done, err := c.advance(rt, now)
		if err != nil {
			return false, err
		}
		if done {
			n.done[i] = true
			n.remaining--
		}
	}
	return n.remaining == 0, nil
}

func (n *parNode) wake() (time.Time, bool) {
	var (
		at    time.Time
		frame bool
	)
	for i, c := range n.children {
		if n.done[i] {
			continue
		}
		t, f := c.wake()
		frame = frame || f
		if !t.IsZero() && (at.IsZero() || t.Before(at)) {
			at = t
		}
	}
	return at, frame
}

// repeatNode replays its body. Each new iteration begins on the following
// turn so an instantaneous body still yields to the scheduler.
type repeatNode struct {
	times int
	body  node

	count   int
	pending bool
	at      time.Time
}

func (n *repeatNode) begin(rt *runtime, now time.Time) (bool, error) {
	n.count = 0
	n.pending = false
	return n.iterate(rt, now)
}

func (n *repeatNode) iterate(rt *runtime, now time.Time) (bool, error) {
	done, err := n.body.begin(rt, now)
	if err != nil || !done {
		return false, err
	}
	return n.finished(now), nil
}

func (n *repeatNode) finished(now time.Time) bool {
	n.count++
	if n.times > 0 && n.count >= n.times {
		return true
	}
	n.pending, n.at = true, now
	return false
}

func (n *repeatNode) advance(rt *runtime, now time.Time) (bool, error) {
	if n.pending {
		n.pending = false
		return n.iterate(rt, now)
	}
	done, err := n.body.advance(rt, now)
	if err != nil || !done {
		return false, err
	}
	return n.finished(now), nil
}

func (n *repeatNode) wake() (time.Time, bool) {
	if n.pending {
		return n.at, false
	}
	return n.body.wake()
}
