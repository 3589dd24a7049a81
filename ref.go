package threelove

// Ref is a write-once-per-mount handle slot. A parent creates the Ref and
// passes it into a wrapped child component; the child's setup populates it
// exactly once during mount, and unmount invalidates it. Ownership is strict:
// only the wrapper writes, only the holder reads.
type Ref[T any] struct {
	val   T
	valid bool
}

// NewRef creates an empty ref.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{}
}

// Get returns the forwarded handle, or false if the owning wrapper has not
// mounted yet or has already unmounted. After unmount the previous handle
// must be treated as invalid; Get never returns it again.
func (r *Ref[T]) Get() (T, bool) {
	if !r.valid {
		var zero T
		return zero, false
	}
	return r.val, true
}

// publish stores the handle. Double publication for one mount means two
// wrappers share a ref, which is a programming error.
func (r *Ref[T]) publish(v T) {
	if r.valid {
		panic("threelove: ref already populated for this mount")
	}
	r.val = v
	r.valid = true
}

// invalidate clears the handle at unmount.
func (r *Ref[T]) invalidate() {
	var zero T
	r.val = zero
	r.valid = false
}

// Wrapper configures a forwarding component built by [Wrap]. Setup constructs
// the wrapped object; the object is exposed through Ref to whoever holds it.
// Watch selects the prop values whose changes drive OnChange, which mutates
// the already-constructed object in place rather than rebuilding it.
type Wrapper[T any] struct {
	// Ref receives the constructed object by the end of the mount phase.
	// Optional: a wrapper without a ref is just a lifecycle-bound object.
	Ref *Ref[T]
	// Props is read by Setup at mount and re-read by Watch on every render.
	Props Props
	// Setup constructs the object. Required.
	Setup func(res *Resources, props Props) (T, error)
	// Destroy tears the object down. A nil Destroy selects the default
	// policy: if the object is a scene Object, remove it from the scene root.
	Destroy func(res *Resources, entity T) error
	// Watch extracts the dependency values OnChange is keyed on.
	Watch func(props Props) []any
	// OnChange applies an incremental mutation after a watched value changed.
	OnChange func(res *Resources, entity T, props Props) error
}

// Wrap builds a component from a Wrapper. The returned component renders no
// output; its effects are the wrapped object's lifecycle and the ref
// forwarding.
func Wrap[T any](w Wrapper[T]) Component {
	if w.Setup == nil {
		panic("threelove: Wrap requires a Setup function")
	}
	return ComponentFunc(func(ctx *Ctx) error {
		get := UseScene(ctx, w.Props,
			func(res *Resources, props Props) (T, error) {
				entity, err := w.Setup(res, props)
				if err != nil {
					return entity, err
				}
				if w.Ref != nil {
					w.Ref.publish(entity)
				}
				return entity, nil
			},
			func(res *Resources, entity T) error {
				// Invalidate before destroy so the holder never observes a
				// half-torn-down object, even if destroy fails.
				if w.Ref != nil {
					w.Ref.invalidate()
				}
				if w.Destroy != nil {
					return w.Destroy(res, entity)
				}
				if obj, ok := any(entity).(Object); ok {
					res.Scene.Remove(obj)
				}
				return nil
			})

		if w.Watch == nil || w.OnChange == nil {
			return nil
		}
		return UseChange(ctx, w.Watch(w.Props), func(res *Resources) error {
			entity, ok := get()
			if !ok {
				return nil
			}
			return w.OnChange(res, entity, w.Props)
		})
	})
}
