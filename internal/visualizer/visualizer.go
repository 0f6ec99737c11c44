package visualizer

// Impl is the capability set a model implementation provides.
type Impl interface {
	// InitMatrix allocates a dimX by dimY cell matrix.
	InitMatrix(dimX, dimY int)
	// PrepareStage sizes per-node state for an nNodeX by nNodeY decomposition.
	PrepareStage(nNodeX, nNodeY int)
	// ClearStage resets cell state and the step index.
	ClearStage()
	// ReadStepsOffsets indexes the step records of every node's step file.
	ReadStepsOffsets(nNodeX, nNodeY int, filename string) error
	// LoadStepState loads step into the matrix and returns the node
	// boundary overlay lines.
	LoadStepState(step StepIndex) ([]Line, error)
	Draw(rows, cols int, target RenderTarget, actor Actor, settings DrawSettings)
	Refresh(rows, cols int, actor Actor, settings DrawSettings)
	// AvailableSteps lists the steps present in every node, ascending.
	AvailableSteps() []StepIndex
	// Close releases the instance. Further calls are undefined.
	Close() error
}

// Visualizer is the uniform handle downstream code drives.
type Visualizer interface {
	Impl
	ModelName() string
}

// Constructor produces a fresh Visualizer per call.
type Constructor func() Visualizer
