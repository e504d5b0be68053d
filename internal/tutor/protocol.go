package tutor

// phase captures what reply type the protocol allows for a round.
type phase int

const (
	// phaseOpening: nothing has happened yet; the tutor must open with
	// a first step, never a grade.
	phaseOpening phase = iota

	// phaseOngoing: a guidance conversation is underway; the tutor may
	// continue stepping or decide the student has effectively finished
	// and grade.
	phaseOngoing

	// phaseClosing: the student answered directly or asked to stop;
	// the tutor must grade.
	phaseClosing
)

// classify decides the protocol phase for a round. A direct answer or
// an end signal always wins over transcript state.
func classify(req Request) phase {
	if req.FinalAnswer != "" || req.EndSignal {
		return phaseClosing
	}
	if len(req.Transcript) == 0 {
		return phaseOpening
	}
	return phaseOngoing
}

// allows reports whether a reply type is legal in this phase.
func (p phase) allows(t ReplyType) bool {
	switch p {
	case phaseOpening:
		return t == ReplyStep
	case phaseClosing:
		return t == ReplyGrade
	default:
		return t == ReplyStep || t == ReplyGrade
	}
}
