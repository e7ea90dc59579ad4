package session

// Mode describes the current shape of the reviewer's uncommitted marks
type Mode string

const (
	ModeNone             Mode = "none"
	ModeSequenceStart    Mode = "sequence_start"
	ModeSequenceComplete Mode = "sequence_complete"
	ModeSingle           Mode = "single_observation"
)

// Marking tracks uncommitted reviewer intent: either a sequence bounded by a
// start and end image, or a single-image observation. The two tracks are
// mutually exclusive. Marks bind to the cursor position at toggle time and
// are not re-evaluated when the cursor later moves.
//
// A sequence may not begin and end on the same image; single-image
// observations use the single track instead.
type Marking struct {
	start  *int
	end    *int
	single *int
}

// NewMarking returns an empty marking state
func NewMarking() *Marking {
	return &Marking{}
}

// Mode derives the current mode from which marks are set
func (m *Marking) Mode() Mode {
	switch {
	case m.single != nil:
		return ModeSingle
	case m.start != nil && m.end != nil:
		return ModeSequenceComplete
	case m.start != nil:
		return ModeSequenceStart
	default:
		return ModeNone
	}
}

// StartIndex returns the marked sequence start, if set
func (m *Marking) StartIndex() (int, bool) {
	if m.start == nil {
		return 0, false
	}
	return *m.start, true
}

// EndIndex returns the marked sequence end, if set
func (m *Marking) EndIndex() (int, bool) {
	if m.end == nil {
		return 0, false
	}
	return *m.end, true
}

// SingleIndex returns the marked single observation image, if set
func (m *Marking) SingleIndex() (int, bool) {
	if m.single == nil {
		return 0, false
	}
	return *m.single, true
}

// ToggleStart sets or clears the sequence start at the given cursor position.
// Turning it on clears any single-image mark; an end mark that would precede
// the new start is dropped. Turning it off drops the end mark too, since an
// end without a start is meaningless. Rejected toggles leave state unchanged.
func (m *Marking) ToggleStart(current int, on bool) error {
	if !on {
		m.start = nil
		m.end = nil
		return nil
	}

	if m.end != nil && *m.end == current {
		return ErrSameImageSequence
	}

	m.single = nil
	idx := current
	m.start = &idx
	if m.end != nil && *m.end < current {
		m.end = nil
	}
	return nil
}

// ToggleEnd sets or clears the sequence end at the given cursor position.
// An end requires an existing start, must not land on the start image, and
// must not precede it. Rejected toggles leave state unchanged.
func (m *Marking) ToggleEnd(current int, on bool) error {
	if !on {
		m.end = nil
		return nil
	}

	if m.start == nil {
		return ErrIncompleteSequence
	}
	if *m.start == current {
		return ErrSameImageSequence
	}
	if current < *m.start {
		return MarkOrderError{Start: *m.start, End: current}
	}

	idx := current
	m.end = &idx
	return nil
}

// ToggleSingle sets or clears the single-image observation mark at the given
// cursor position. Turning it on clears both sequence marks.
func (m *Marking) ToggleSingle(current int, on bool) {
	if !on {
		m.single = nil
		return
	}
	m.start = nil
	m.end = nil
	idx := current
	m.single = &idx
}

// Reset clears all marks
func (m *Marking) Reset() {
	m.start = nil
	m.end = nil
	m.single = nil
}

// MarkingView is a read-only snapshot of the marking state for rendering
type MarkingView struct {
	Mode        Mode `json:"mode"`
	StartIndex  *int `json:"start_index,omitempty"`
	EndIndex    *int `json:"end_index,omitempty"`
	SingleIndex *int `json:"single_index,omitempty"`
}

// View returns a snapshot of the marking state
func (m *Marking) View() MarkingView {
	v := MarkingView{Mode: m.Mode()}
	if m.start != nil {
		idx := *m.start
		v.StartIndex = &idx
	}
	if m.end != nil {
		idx := *m.end
		v.EndIndex = &idx
	}
	if m.single != nil {
		idx := *m.single
		v.SingleIndex = &idx
	}
	return v
}
