package behaviortree

// Sequence ticks its children in authoring order, stopping at (and
// returning) the first Failure or Working. Success if every child
// succeeds, including the empty case.
type Sequence struct{ Base }

// NewSequence creates an unattached Sequence node.
func NewSequence() *Sequence { return &Sequence{} }

func (s *Sequence) Update(ex *Executor) (Status, error) {
	for _, c := range s.Tree().Children(s) {
		status, err := ex.Update(c)
		if err != nil {
			return status, err
		}
		if status == StatusFailure || status == StatusWorking {
			return status, nil
		}
	}
	return StatusSuccess, nil
}

// Selector ticks its children in authoring order, stopping at (and
// returning) the first result that is not Failure. Failure if every child
// fails, including the empty case.
type Selector struct{ Base }

// NewSelector creates an unattached Selector node.
func NewSelector() *Selector { return &Selector{} }

func (s *Selector) Update(ex *Executor) (Status, error) {
	last := StatusFailure
	for _, c := range s.Tree().Children(s) {
		status, err := ex.Update(c)
		if err != nil {
			return status, err
		}
		if status != StatusFailure {
			return status, nil
		}
		last = status
	}
	return last, nil
}

// firstChild returns a decorator's sole ticked child: authoring order's
// first. A decorator authored with more than one child ticks only this
// one; the extras stay in the graph but are never visited.
func firstChild(t *Tree, n Node) (Node, bool) {
	children := t.Children(n)
	if len(children) == 0 {
		return nil, false
	}
	return children[0], true
}

// Invert forwards to its sole child, swapping Success and Failure. Working
// passes through unchanged. Success if there is no child.
type Invert struct{ Base }

// NewInvert creates an unattached Invert node.
func NewInvert() *Invert { return &Invert{} }

func (d *Invert) Update(ex *Executor) (Status, error) {
	child, ok := firstChild(d.Tree(), d)
	if !ok {
		return StatusSuccess, nil
	}
	status, err := ex.Update(child)
	if err != nil {
		return status, err
	}
	switch status {
	case StatusSuccess:
		return StatusFailure, nil
	case StatusFailure:
		return StatusSuccess, nil
	default:
		return status, nil
	}
}

// ForceFailure forwards to its sole child, returning Failure unless the
// child's result is Working, which passes through unchanged. Failure if
// there is no child. Named ForceFailure rather than "Failure" to avoid
// colliding with the Status value.
type ForceFailure struct{ Base }

// NewForceFailure creates an unattached ForceFailure node.
func NewForceFailure() *ForceFailure { return &ForceFailure{} }

func (d *ForceFailure) Update(ex *Executor) (Status, error) {
	child, ok := firstChild(d.Tree(), d)
	if !ok {
		return StatusFailure, nil
	}
	status, err := ex.Update(child)
	if err != nil {
		return status, err
	}
	if status == StatusSuccess {
		return StatusFailure, nil
	}
	return status, nil
}

// ForceSuccess is symmetric to ForceFailure: forwards to its sole child,
// returning Success unless the child's result is Working, which passes
// through unchanged. Success if there is no child.
type ForceSuccess struct{ Base }

// NewForceSuccess creates an unattached ForceSuccess node.
func NewForceSuccess() *ForceSuccess { return &ForceSuccess{} }

func (d *ForceSuccess) Update(ex *Executor) (Status, error) {
	child, ok := firstChild(d.Tree(), d)
	if !ok {
		return StatusSuccess, nil
	}
	status, err := ex.Update(child)
	if err != nil {
		return status, err
	}
	if status == StatusFailure {
		return StatusSuccess, nil
	}
	return status, nil
}
