package threelove

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Resources is the shared resource bundle a SceneManager publishes to its
// subtree: the scene root plus the handles every binding may need. It is an
// immutable value; descendants consume it and never mutate it. The scene
// graph itself is mutable only through Scene.Add and Scene.Remove.
type Resources struct {
	Scene    *Scene
	Camera   *Camera
	Canvas   *ebiten.Image
	Renderer Renderer
}

// Ready reports whether every handle in the bundle is populated. The
// SceneManager transitions to StateReady only once this holds.
func (r *Resources) Ready() bool {
	return r != nil && r.Scene != nil && r.Camera != nil &&
		r.Canvas != nil && r.Renderer != nil
}

// Ctx is the execution context threaded into every component lifecycle call.
// It carries the shared resource bundle published by the nearest ancestor
// SceneManager, the per-instance hook state, and the logger. Contexts are
// values scoped to one render pass; components must not retain them.
type Ctx struct {
	inst *instance
	res  *Resources
	log  *zap.Logger
}

// Resources returns the shared resource bundle, or ErrResourcesNotReady if no
// complete bundle has been published to this subtree yet. Components that
// need handles outside a binding's setup/destroy read them here.
func (c *Ctx) Resources() (*Resources, error) {
	if !c.res.Ready() {
		return nil, ErrResourcesNotReady
	}
	return c.res, nil
}

// WithResources derives a context that publishes res to components composed
// through it. Used by the SceneManager to distribute its bundle; most
// components never call this.
func (c *Ctx) WithResources(res *Resources) *Ctx {
	d := *c
	d.res = res
	return &d
}

// Logger returns the tree's logger. Never nil.
func (c *Ctx) Logger() *zap.Logger {
	return c.log
}

// Compose mounts child under the current component on the first render and
// re-renders it on every subsequent render. The child inherits this context's
// resource bundle. Like every hook, Compose must be called in the same order
// on every render of the enclosing component.
//
// Mounting is fully synchronous: when Compose returns, the child's setup
// effects (including any handle forwarding) have completed.
func (c *Ctx) Compose(child Component) error {
	in := c.inst
	ci := hookAt(in, func() *instance { return newInstance(child) })

	switch in.phase {
	case phaseCreated:
		if in.err != nil {
			return nil
		}
		if err := ci.mount(c.forInstance(ci)); err != nil {
			in.err = err
			return err
		}
		return nil
	case phaseMounted:
		return ci.update(c.forInstance(ci))
	default:
		panic("threelove: Compose called on unmounted component")
	}
}

// forInstance rebinds the context to a child instance, keeping the resource
// bundle and logger.
func (c *Ctx) forInstance(in *instance) *Ctx {
	d := *c
	d.inst = in
	return &d
}

// bundle returns whatever resource bundle is in scope, complete or not. Hooks
// use it so the SceneManager's internal wrappers, which run while the bundle
// is still being collected, can see the scene handle. User components always
// sit below a Ready bundle.
func (c *Ctx) bundle() (*Resources, error) {
	if c.res == nil || c.res.Scene == nil {
		return nil, ErrResourcesNotReady
	}
	return c.res, nil
}
