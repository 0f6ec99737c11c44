package manager

import (
	"time"

	"vizd/pkg/types"
)

// State is the lifecycle state of a ModelDescriptor.
type State string

const (
	StateNotCompiled   State = "not_compiled"
	StateCompiling     State = "compiling"
	StateCompiled      State = "compiled"
	StateCompileFailed State = "compile_failed"
	StateLoaded        State = "loaded"
	StateLoadFailed    State = "load_failed"
)

// Origin tells built-in models from compiled ones.
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginDynamic Origin = "dynamic"
)

// transitions lists the legal next states. Terminal states have none; a
// retry replaces the descriptor.
var transitions = map[State][]State{
	StateNotCompiled: {StateCompiling},
	StateCompiling:   {StateCompiled, StateCompileFailed},
	StateCompiled:    {StateLoaded, StateLoadFailed},
}

// ModelDescriptor tracks one model. Descriptors handed out by the Manager
// are copies.
type ModelDescriptor struct {
	Name         string
	State        State
	Origin       Origin
	SourcePath   string
	ArtifactPath string
	Generation   int
	Err          error
	UpdatedAt    time.Time
}

func newDescriptor(name string, origin Origin, state State) *ModelDescriptor {
	return &ModelDescriptor{Name: name, Origin: origin, State: state, UpdatedAt: time.Now()}
}

// transition moves d to next or returns an error leaving d untouched.
func (d *ModelDescriptor) transition(next State) error {
	for _, s := range transitions[d.State] {
		if s == next {
			d.State = next
			d.UpdatedAt = time.Now()
			return nil
		}
	}
	return illegalTransitionError{name: d.Name, from: d.State, to: next}
}

// Failed reports whether d is in a terminal failure state.
func (d ModelDescriptor) Failed() bool {
	return d.State == StateCompileFailed || d.State == StateLoadFailed
}

func (d ModelDescriptor) toAPI(registered bool) types.Model {
	m := types.Model{
		Name:         d.Name,
		State:        string(d.State),
		Origin:       string(d.Origin),
		SourcePath:   d.SourcePath,
		ArtifactPath: d.ArtifactPath,
		Generation:   d.Generation,
		Registered:   registered,
		UpdatedUnix:  d.UpdatedAt.Unix(),
	}
	if d.Err != nil {
		m.Error = d.Err.Error()
	}
	return m
}

// ResolutionTag classifies what Lookup found for a name.
type ResolutionTag int

const (
	Unknown ResolutionTag = iota
	Builtin
	Loaded
	Compiled
	Failed
	// Pending covers discovered models not compiled yet and running compiles.
	Pending
)

func (t ResolutionTag) String() string {
	switch t {
	case Builtin:
		return "builtin"
	case Loaded:
		return "loaded"
	case Compiled:
		return "compiled"
	case Failed:
		return "failed"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Resolution is the result of Lookup.
type Resolution struct {
	Tag        ResolutionTag
	Descriptor ModelDescriptor
}
