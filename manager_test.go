package threelove

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer counts frames instead of drawing.
type fakeRenderer struct {
	frames int
}

func (r *fakeRenderer) Render(*Scene, *Camera, *ebiten.Image) { r.frames++ }

func newTestManager(children ...Component) (*SceneManager, *fakeRenderer) {
	m := NewSceneManager(ManagerConfig{Width: 32, Height: 32}, children...)
	fr := &fakeRenderer{}
	m.newRenderer = func(Props) (Renderer, error) { return fr, nil }
	return m, fr
}

func TestManagerReachesReady(t *testing.T) {
	m, _ := newTestManager()
	assert.Equal(t, StateUninitialized, m.State())

	require.NoError(t, m.Update())
	assert.Equal(t, StateReady, m.State())
}

func TestManagerNoFrameBeforeReady(t *testing.T) {
	m, fr := newTestManager()
	m.Draw(nil)
	assert.Equal(t, uint64(0), m.Frames())
	assert.Equal(t, 0, fr.frames, "no frame may render before the manager is ready")
}

func TestManagerRendersWhenReady(t *testing.T) {
	m, fr := newTestManager()
	require.NoError(t, m.Update())
	m.Draw(nil)
	m.Draw(nil)
	assert.Equal(t, uint64(2), m.Frames())
	assert.Equal(t, 2, fr.frames)
}

func TestManagerPublishesResourcesToChildren(t *testing.T) {
	var got *Resources
	child := ComponentFunc(func(ctx *Ctx) error {
		r, err := ctx.Resources()
		if err != nil {
			return err
		}
		got = r
		return nil
	})

	m, _ := newTestManager(child)
	require.NoError(t, m.Update())
	require.NotNil(t, got)
	assert.Same(t, m.Scene(), got.Scene)
	assert.True(t, got.Ready(), "children must only ever see a complete bundle")
}

// Scenario C: canvas construction fails. The manager must never reach Ready
// and no frame may render.
func TestManagerCanvasFailureHaltsLoop(t *testing.T) {
	m, fr := newTestManager()
	noCanvas := errors.New("canvas construction failed")
	m.newCanvas = func(Props) (*ebiten.Image, error) { return nil, noCanvas }

	err := m.Update()
	require.Error(t, err)
	assert.ErrorIs(t, err, noCanvas)
	assert.Equal(t, StateFailed, m.State())

	m.Draw(nil)
	assert.Equal(t, uint64(0), m.Frames())
	assert.Equal(t, 0, fr.frames)

	// The loop stays halted: every subsequent tick reports the failure.
	assert.ErrorIs(t, m.Update(), noCanvas)
	assert.ErrorIs(t, m.Err(), noCanvas)
}

func TestManagerCameraFailureHaltsLoop(t *testing.T) {
	m, fr := newTestManager()
	m.newCamera = func(Props) (*Camera, error) { return nil, errors.New("no camera") }

	require.Error(t, m.Update())
	assert.Equal(t, StateFailed, m.State())
	m.Draw(nil)
	assert.Equal(t, 0, fr.frames)
}

func TestManagerChildFailureDoesNotReachReadyFrames(t *testing.T) {
	child := ComponentFunc(func(ctx *Ctx) error { return nil })
	failing := ComponentFunc(func(ctx *Ctx) error {
		UseScene(ctx, nil, func(*Resources, Props) (int, error) {
			return 0, errors.New("child setup failed")
		}, nil)
		return nil
	})

	m, fr := newTestManager(child, failing)
	require.Error(t, m.Update())
	assert.Equal(t, StateFailed, m.State())
	m.Draw(nil)
	assert.Equal(t, 0, fr.frames)
}

// The render loop is cancelled before any destroy runs: bindings observe the
// manager in StateUnmounting, never StateReady, during teardown.
func TestManagerShutdownCancelsLoopBeforeDestroys(t *testing.T) {
	var m *SceneManager
	var stateAtDestroy ManagerState
	child := ComponentFunc(func(ctx *Ctx) error {
		UseScene(ctx, nil, func(r *Resources, _ Props) (*fakeObject, error) {
			obj := &fakeObject{name: "g"}
			r.Scene.Add(obj)
			return obj, nil
		}, func(r *Resources, obj *fakeObject) error {
			stateAtDestroy = m.State()
			r.Scene.Remove(obj)
			return nil
		})
		return nil
	})

	m, fr := newTestManager(child)
	require.NoError(t, m.Update())
	m.Draw(nil)
	require.Equal(t, 1, fr.frames)

	m.Shutdown()
	assert.Equal(t, StateUnmounting, stateAtDestroy,
		"render loop must be cancelled before wrapper destroys run")
	assert.Equal(t, StateTornDown, m.State())
	assert.Equal(t, 0, m.Scene().Len())

	// Torn down managers render nothing.
	m.Draw(nil)
	assert.Equal(t, 1, fr.frames)
}

func TestManagerShutdownIdempotent(t *testing.T) {
	m, _ := newTestManager()
	require.NoError(t, m.Update())
	m.Shutdown()
	m.Shutdown()
	assert.Equal(t, StateTornDown, m.State())
}

func TestManagerShutdownBeforeMount(t *testing.T) {
	m, _ := newTestManager()
	m.Shutdown() // nothing mounted; no destroys, no panic
	assert.Equal(t, StateTornDown, m.State())
}

func TestManagerLayoutAspectUpdatesCamera(t *testing.T) {
	m, _ := newTestManager()
	require.NoError(t, m.Update())
	cam, ok := m.cameraRef.Get()
	require.True(t, ok)
	require.Equal(t, Rect{Width: 32, Height: 32}, cam.Viewport)

	// Window resized to 4:1; the camera wrapper's watched aspect changes and
	// the viewport is letterboxed in place.
	w, h := m.Layout(128, 32)
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
	require.NoError(t, m.Update())

	assert.Equal(t, Rect{X: 0, Y: 12, Width: 32, Height: 8}, cam.Viewport)
	camAfter, _ := m.cameraRef.Get()
	assert.Same(t, cam, camAfter, "aspect change mutates the camera, never rebuilds it")
}

func TestManagerUpdateTicksSceneUpdaters(t *testing.T) {
	m, _ := newTestManager()
	require.NoError(t, m.Update())

	obj := &fakeObject{name: "ticker"}
	m.Scene().Add(obj)
	require.NoError(t, m.Update())
	require.NoError(t, m.Update())
	assert.Equal(t, 2, obj.updates)
}

func TestManagerStateString(t *testing.T) {
	want := map[ManagerState]string{
		StateUninitialized:  "uninitialized",
		StateHandlesPending: "handles-pending",
		StateReady:          "ready",
		StateUnmounting:     "unmounting",
		StateTornDown:       "torn-down",
		StateFailed:         "failed",
		ManagerState(99):    "unknown",
	}
	for state, s := range want {
		assert.Equal(t, s, state.String())
	}
}
