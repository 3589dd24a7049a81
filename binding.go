package threelove

import "go.uber.org/zap"

// record is the per-component-instance binding state: the entity produced by
// setup and the flags tracking how far the lifecycle has progressed. Exactly
// one record exists per UseScene call site per mounted instance; records are
// never shared across instances.
type record[E any] struct {
	entity    E
	hasRun    bool
	destroyed bool
	res       *Resources
	destroy   func(*Resources, E) error
	owner     string
}

// teardown implements slotTeardown. Destroy runs at most once, only if setup
// ran, and its failure is reported without blocking the rest of the unmount.
func (r *record[E]) teardown(log *zap.Logger) {
	if !r.hasRun || r.destroyed {
		return
	}
	r.destroyed = true

	if r.destroy != nil {
		if err := r.destroy(r.res, r.entity); err != nil {
			log.Warn("binding destroy failed",
				zap.String("component", r.owner),
				zap.Error(err))
		}
		return
	}
	// Default policy: remove the entity from the scene root. Remove is
	// idempotent, so a destroy that raced with manual removal is harmless.
	if obj, ok := any(r.entity).(Object); ok {
		r.res.Scene.Remove(obj)
	}
}

// UseScene ties one scene entity's lifecycle to the calling component's
// lifecycle. On the mount render it snapshots props, runs setup exactly once,
// and records the entity; on every later render it returns the existing
// accessor without touching setup. destroy runs exactly once at unmount; a
// nil destroy selects the default policy of removing the entity from the
// scene root.
//
// Setup is expected to mutate the scene graph synchronously, typically
// constructing an object and adding it under the scene root. If setup fails,
// the entity stays absent and the enclosing mount aborts.
//
// The returned accessor reports the current entity, or false before mount
// completes and after unmount.
func UseScene[E any](
	ctx *Ctx,
	props Props,
	setup func(res *Resources, props Props) (E, error),
	destroy func(res *Resources, entity E) error,
) func() (E, bool) {
	in := ctx.inst
	r := hookAt(in, func() *record[E] {
		return &record[E]{destroy: destroy, owner: in.name()}
	})

	if in.phase == phaseCreated && in.err == nil {
		if r.hasRun {
			// A second setup for one record means the scheduler broke its
			// mount-once contract. Not recoverable.
			panic("threelove: setup already ran for this binding")
		}
		r.runSetup(ctx, props, setup)
	}

	return func() (E, bool) {
		if !r.hasRun || r.destroyed {
			var zero E
			return zero, false
		}
		return r.entity, true
	}
}

// runSetup executes setup with props snapshotted at this moment, so later
// mutations of the caller's props map never leak into initial construction.
func (r *record[E]) runSetup(ctx *Ctx, props Props, setup func(*Resources, Props) (E, error)) {
	in := ctx.inst
	res, err := ctx.bundle()
	if err != nil {
		in.err = err
		return
	}
	entity, err := setup(res, props.Clone())
	if err != nil {
		in.err = &SetupError{Component: r.owner, Err: err}
		return
	}
	r.entity = entity
	r.res = res
	r.hasRun = true
}

// changeSlot tracks the dependency values a UseChange call site last ran with.
type changeSlot struct {
	deps  []any
	armed bool
}

// UseChange runs fn when, and only when, the dependency values differ from
// the previous render. The mount render arms the slot without running fn:
// setup owns initial construction, UseChange owns incremental mutation of the
// already-constructed entity. Dependencies are compared with ==, so they must
// be comparable values.
func UseChange(ctx *Ctx, deps []any, fn func(res *Resources) error) error {
	in := ctx.inst
	s := hookAt(in, func() *changeSlot { return &changeSlot{} })
	if in.err != nil {
		return nil
	}

	if !s.armed {
		s.deps = append([]any(nil), deps...)
		s.armed = true
		return nil
	}
	if depsEqual(s.deps, deps) {
		return nil
	}

	res, err := ctx.bundle()
	if err != nil {
		return err
	}
	if err := fn(res); err != nil {
		return err
	}
	s.deps = append(s.deps[:0], deps...)
	return nil
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
