package glboot

// Teardown releases acquired resources in reverse order, exactly once.
type Teardown struct {
	fns  []func()
	done bool
}

// Push registers fn to run on Release. Pushing after Release runs fn at once.
func (t *Teardown) Push(fn func()) {
	if t.done {
		fn()
		return
	}
	t.fns = append(t.fns, fn)
}

// Release runs the registered functions, last pushed first. Later calls do
// nothing.
func (t *Teardown) Release() {
	if t.done {
		return
	}
	t.done = true
	for i := len(t.fns) - 1; i >= 0; i-- {
		t.fns[i]()
	}
	t.fns = nil
}

// Released reports whether Release has run.
func (t *Teardown) Released() bool {
	return t.done
}
