package threelove

import "github.com/hajimehoshi/ebiten/v2"

// Object is anything that can be a member of a Scene. Objects draw themselves
// under the camera's view matrix when the renderer visits them.
type Object interface {
	Draw(dst *ebiten.Image, view [6]float64)
}

// Updater is implemented by objects that want a per-tick callback. The scene
// calls Update on every member that implements it, once per scheduler tick.
type Updater interface {
	Update(dt float64)
}

// Scene is the root container of the imperative scene graph. Exactly one
// Scene exists per mounted SceneManager; every descendant binding shares it
// but does not own it. Membership is a set: the only mutators are Add and
// Remove, typically invoked from a binding's setup and destroy.
type Scene struct {
	objects []Object
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends obj to the scene's membership. Adding an object that is already
// a member is a no-op; no object can be double-added. Panics if obj is nil.
func (s *Scene) Add(obj Object) {
	if obj == nil {
		panic("threelove: cannot add nil object to scene")
	}
	if s.Contains(obj) {
		return
	}
	s.objects = append(s.objects, obj)
}

// Remove detaches obj from the scene. Removing an object that is not a member
// is a no-op, so the default destroy policy stays idempotent.
func (s *Scene) Remove(obj Object) {
	for i, o := range s.objects {
		if o == obj {
			copy(s.objects[i:], s.objects[i+1:])
			s.objects[len(s.objects)-1] = nil
			s.objects = s.objects[:len(s.objects)-1]
			return
		}
	}
}

// Contains reports whether obj is currently a member of the scene.
func (s *Scene) Contains(obj Object) bool {
	for _, o := range s.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// Objects returns the member list in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Len returns the number of scene members.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Update advances every member that implements Updater. Called once per
// scheduler tick by the SceneManager.
func (s *Scene) Update(dt float64) {
	for _, obj := range s.objects {
		if u, ok := obj.(Updater); ok {
			u.Update(dt)
		}
	}
}
