package visualizer

// Adapter forwards every operation to an implementation of type T unchanged
// and reports the model name it was bound with.
type Adapter[T Impl] struct {
	name string
	impl T
}

// NewAdapter wraps impl under name.
func NewAdapter[T Impl](name string, impl T) *Adapter[T] {
	return &Adapter[T]{name: name, impl: impl}
}

// Bind returns a Constructor creating one adapted instance of newImpl per call.
func Bind[T Impl](name string, newImpl func() T) Constructor {
	return func() Visualizer { return NewAdapter(name, newImpl()) }
}

// Unwrap returns the wrapped implementation.
func (a *Adapter[T]) Unwrap() T { return a.impl }

func (a *Adapter[T]) ModelName() string { return a.name }

func (a *Adapter[T]) InitMatrix(dimX, dimY int) { a.impl.InitMatrix(dimX, dimY) }

func (a *Adapter[T]) PrepareStage(nNodeX, nNodeY int) { a.impl.PrepareStage(nNodeX, nNodeY) }

func (a *Adapter[T]) ClearStage() { a.impl.ClearStage() }

func (a *Adapter[T]) ReadStepsOffsets(nNodeX, nNodeY int, filename string) error {
	return a.impl.ReadStepsOffsets(nNodeX, nNodeY, filename)
}

func (a *Adapter[T]) LoadStepState(step StepIndex) ([]Line, error) {
	return a.impl.LoadStepState(step)
}

func (a *Adapter[T]) Draw(rows, cols int, target RenderTarget, actor Actor, s DrawSettings) {
	a.impl.Draw(rows, cols, target, actor, s)
}

func (a *Adapter[T]) Refresh(rows, cols int, actor Actor, s DrawSettings) {
	a.impl.Refresh(rows, cols, actor, s)
}

func (a *Adapter[T]) AvailableSteps() []StepIndex { return a.impl.AvailableSteps() }

func (a *Adapter[T]) Close() error { return a.impl.Close() }

// Err forwards the construction failure recorded by the implementation, if
// it records one.
func (a *Adapter[T]) Err() error {
	if e, ok := any(a.impl).(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}
