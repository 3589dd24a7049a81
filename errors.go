package threelove

import (
	"errors"
	"fmt"
)

// ErrResourcesNotReady is returned when a component reads the shared resource
// bundle before the SceneManager has finished collecting all of its handles.
// Reading early is a caller mistake that should surface immediately rather
// than silently operating on absent handles.
var ErrResourcesNotReady = errors.New("threelove: shared resources not ready")

// SetupError wraps a failure raised by a binding's setup function. The
// enclosing component mount aborts, the entity stays absent, and the error
// propagates to whoever drove the mount.
type SetupError struct {
	// Component is the dynamic type name of the component whose setup failed.
	Component string
	Err       error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("threelove: setup of %s failed: %v", e.Component, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
