package plugin

import (
	"sync"
	"sync/atomic"

	"vizd/internal/visualizer"
)

// Actors reachable from native callbacks during a Draw or Refresh call.
var (
	hostActors sync.Map // uintptr -> visualizer.Actor
	hostSeq    atomic.Uintptr
)

// newHost registers actor for the duration of one native call. The returned
// release func must be called once the call returns.
func newHost(actor visualizer.Actor) (*cHost, func()) {
	resize, setCell := hostCallbacks()
	h := &cHost{Ctx: hostSeq.Add(1), Resize: resize, SetCell: setCell}
	if actor != nil {
		h.ActorHandle = actor.Handle()
		hostActors.Store(h.Ctx, actor)
	}
	return h, func() { hostActors.Delete(h.Ctx) }
}

func hostActor(ctx uintptr) visualizer.Actor {
	v, ok := hostActors.Load(ctx)
	if !ok {
		return nil
	}
	return v.(visualizer.Actor)
}

func hostResize(ctx, rows, cols uintptr) {
	if a := hostActor(ctx); a != nil {
		a.Resize(int(rows), int(cols))
	}
}

func hostSetCell(ctx, row, col, rgba uintptr) {
	if a := hostActor(ctx); a != nil {
		a.SetCell(int(row), int(col), visualizer.ColorFromRGBA(uint32(rgba)))
	}
}
