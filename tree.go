package threelove

import (
	"fmt"

	"go.uber.org/zap"
)

// Component is a node in the declarative tree. Render runs once at mount and
// again on every update pass; it declares the component's bindings and
// children through hooks ([UseScene], [UseChange], [Ctx.Compose]). Components
// produce no visible output — their only observable effect is the scene graph
// mutation performed by their bindings.
type Component interface {
	Render(ctx *Ctx) error
}

// ComponentFunc adapts a plain function to the Component interface.
type ComponentFunc func(*Ctx) error

// Render implements Component.
func (f ComponentFunc) Render(ctx *Ctx) error {
	return f(ctx)
}

// phase is the lifecycle state of one component instance.
type phase uint8

const (
	phaseCreated   phase = iota // allocated, setup not yet run
	phaseMounted                // setup complete, updates may run
	phaseUnmounted              // torn down, or mount aborted
)

// slotTeardown is implemented by hook slots that hold resources needing
// teardown at unmount.
type slotTeardown interface {
	teardown(log *zap.Logger)
}

// instance is the per-component-instance lifecycle record. Hook slots are
// allocated in call order during the mount render and must line up on every
// later render.
type instance struct {
	comp   Component
	phase  phase
	hooks  []any
	cursor int
	err    error // first setup failure during the mount render
}

func newInstance(c Component) *instance {
	return &instance{comp: c}
}

// name returns the component's dynamic type name, for errors and logs.
func (in *instance) name() string {
	return fmt.Sprintf("%T", in.comp)
}

// hookAt returns the hook slot at the instance's current cursor, creating it
// with init on the mount render. Creating a slot on any later render means
// the component changed its hook call order, which is a programming error.
func hookAt[T any](in *instance, init func() T) T {
	i := in.cursor
	in.cursor++
	if i < len(in.hooks) {
		s, ok := in.hooks[i].(T)
		if !ok {
			panic("threelove: hook call order changed between renders")
		}
		return s
	}
	if in.phase != phaseCreated {
		panic("threelove: hook call added after mount")
	}
	s := init()
	in.hooks = append(in.hooks, s)
	return s
}

// mount runs the component's first render, committing every binding's setup
// synchronously. On failure, bindings that already ran are unwound and the
// instance is dead: mounting the same instance twice is a scheduler contract
// violation and panics.
func (in *instance) mount(ctx *Ctx) error {
	if in.phase != phaseCreated {
		panic("threelove: component mounted twice")
	}
	in.cursor = 0
	err := in.comp.Render(ctx)
	if err == nil {
		err = in.err
	}
	if err != nil {
		in.unwind(ctx.log)
		in.phase = phaseUnmounted
		return err
	}
	in.phase = phaseMounted
	return nil
}

// update re-renders a mounted component. Hooks guarantee no setup or destroy
// runs during an update pass.
func (in *instance) update(ctx *Ctx) error {
	if in.phase != phaseMounted {
		panic("threelove: update on unmounted component")
	}
	in.cursor = 0
	return in.comp.Render(ctx)
}

// unmount tears the instance down. Unmounting an instance whose setup never
// ran is a no-op: no destroy is invoked.
func (in *instance) unmount(log *zap.Logger) {
	if in.phase != phaseMounted {
		in.phase = phaseUnmounted
		return
	}
	in.unwind(log)
	in.phase = phaseUnmounted
}

// unwind runs teardown for every hook slot in reverse registration order.
// Destroy failures are logged and never block the remaining teardowns.
func (in *instance) unwind(log *zap.Logger) {
	for i := len(in.hooks) - 1; i >= 0; i-- {
		if td, ok := in.hooks[i].(slotTeardown); ok {
			td.teardown(log)
		}
	}
	in.hooks = nil
}

// teardown implements slotTeardown so composed children unwind with their
// parent.
func (in *instance) teardown(log *zap.Logger) {
	in.unmount(log)
}

// Tree drives the lifecycle of a single root component and everything it
// composes. All phases run synchronously on the caller's goroutine; the host
// scheduler (normally the SceneManager's game loop) is expected to interleave
// Update calls with render frames.
type Tree struct {
	log  *zap.Logger
	root *instance
}

// NewTree creates an empty tree. A nil logger defaults to a no-op logger.
func NewTree(log *zap.Logger) *Tree {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tree{log: log}
}

// Mount mounts c as the tree's root. If any binding's setup fails, the mount
// aborts, already-run setups are unwound, and the error is returned; the tree
// is left empty so a corrected component can be mounted again.
func (t *Tree) Mount(c Component) error {
	if t.root != nil {
		panic("threelove: tree already has a mounted root")
	}
	in := newInstance(c)
	if err := in.mount(&Ctx{inst: in, log: t.log}); err != nil {
		return err
	}
	t.root = in
	return nil
}

// Update runs one update pass over the mounted tree. No-op on an empty tree.
func (t *Tree) Update() error {
	if t.root == nil {
		return nil
	}
	return t.root.update(&Ctx{inst: t.root, log: t.log})
}

// Unmount tears down the mounted tree, running every binding's destroy
// exactly once. Destroy failures are logged but do not block sibling
// teardowns. No-op on an empty tree.
func (t *Tree) Unmount() {
	if t.root == nil {
		return
	}
	t.root.unmount(t.log)
	t.root = nil
}

// Mounted reports whether the tree currently has a mounted root.
func (t *Tree) Mounted() bool {
	return t.root != nil
}
