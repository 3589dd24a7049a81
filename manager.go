package threelove

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ManagerState tracks the SceneManager lifecycle. The render loop may only
// tick in StateReady.
type ManagerState uint8

const (
	StateUninitialized  ManagerState = iota // constructed, not yet mounted
	StateHandlesPending                     // mounting; canvas/camera/renderer handles incomplete
	StateReady                              // all handles populated, render loop live
	StateUnmounting                         // render loop cancelled, teardown in progress
	StateTornDown                           // teardown complete
	StateFailed                             // a wrapper setup failed; render loop halted
)

func (s ManagerState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHandlesPending:
		return "handles-pending"
	case StateReady:
		return "ready"
	case StateUnmounting:
		return "unmounting"
	case StateTornDown:
		return "torn-down"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ManagerConfig configures a SceneManager.
type ManagerConfig struct {
	// Width and Height are the canvas (render target) dimensions in pixels.
	// Zero values default to 640x480.
	Width, Height int
	// ClearColor is the per-frame clear color.
	ClearColor Color
	// Zoom is the camera's initial zoom factor. Zero defaults to 1.
	Zoom float64
	// Logger receives lifecycle and failure logs. Nil defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// SceneManager owns the scene root and assembles the canvas, camera, and
// renderer through forwarding wrappers. Once all three handles are collected
// it publishes the Resources bundle to its child components and drives the
// render loop as an [ebiten.Game].
type SceneManager struct {
	cfg      ManagerConfig
	log      *zap.Logger
	scene    *Scene
	tree     *Tree
	state    ManagerState
	children []Component

	canvasRef   *Ref[*ebiten.Image]
	cameraRef   *Ref[*Camera]
	rendererRef *Ref[Renderer]

	canvasW   Component
	cameraW   Component
	rendererW Component

	// partial carries the scene handle to the internal wrappers while the
	// full bundle is still being collected.
	partial *Resources
	res     *Resources

	// camProps feeds Layout-driven prop changes into the camera wrapper's
	// watch list.
	camProps Props

	frames uint64
	err    error

	// Construction hooks, replaceable in tests.
	newCanvas   func(props Props) (*ebiten.Image, error)
	newCamera   func(props Props) (*Camera, error)
	newRenderer func(props Props) (Renderer, error)
}

// NewSceneManager creates a manager with the given config and child
// components. Children mount under the published resource bundle on the first
// Update tick.
func NewSceneManager(cfg ManagerConfig, children ...Component) *SceneManager {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Zoom == 0 {
		cfg.Zoom = 1
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m := &SceneManager{
		cfg:         cfg,
		log:         log,
		scene:       NewScene(),
		tree:        NewTree(log),
		state:       StateUninitialized,
		children:    children,
		canvasRef:   NewRef[*ebiten.Image](),
		cameraRef:   NewRef[*Camera](),
		rendererRef: NewRef[Renderer](),
		camProps: Props{
			"width":  float64(cfg.Width),
			"height": float64(cfg.Height),
			"aspect": float64(cfg.Width) / float64(cfg.Height),
			"zoom":   cfg.Zoom,
		},
	}
	m.partial = &Resources{Scene: m.scene}
	m.newCanvas = defaultCanvas
	m.newCamera = defaultCamera
	m.newRenderer = func(Props) (Renderer, error) {
		return NewRenderer(cfg.ClearColor), nil
	}
	m.buildWrappers()
	return m
}

func defaultCanvas(props Props) (*ebiten.Image, error) {
	w := int(props.Float("width", 640))
	h := int(props.Float("height", 480))
	return ebiten.NewImage(w, h), nil
}

func defaultCamera(props Props) (*Camera, error) {
	w := props.Float("width", 640)
	h := props.Float("height", 480)
	cam := NewCamera(Rect{Width: w, Height: h})
	cam.X = w / 2
	cam.Y = h / 2
	cam.Zoom = props.Float("zoom", 1)
	return cam, nil
}

// buildWrappers assembles the three forwarding wrappers that construct the
// shared handles.
func (m *SceneManager) buildWrappers() {
	m.canvasW = Wrap(Wrapper[*ebiten.Image]{
		Ref:   m.canvasRef,
		Props: m.camProps,
		Setup: func(_ *Resources, props Props) (*ebiten.Image, error) {
			return m.newCanvas(props)
		},
		Destroy: func(_ *Resources, img *ebiten.Image) error {
			img.Deallocate()
			return nil
		},
	})

	m.cameraW = Wrap(Wrapper[*Camera]{
		Ref:   m.cameraRef,
		Props: m.camProps,
		Setup: func(_ *Resources, props Props) (*Camera, error) {
			return m.newCamera(props)
		},
		Destroy: func(_ *Resources, _ *Camera) error { return nil },
		Watch: func(props Props) []any {
			return []any{props.Float("aspect", 0), props.Float("zoom", 1)}
		},
		OnChange: func(_ *Resources, cam *Camera, props Props) error {
			// Incremental mutation: recompute the viewport for the new
			// aspect ratio, never rebuild the camera.
			w := props.Float("width", 640)
			h := props.Float("height", 480)
			cam.SetViewport(viewportForAspect(w, h, props.Float("aspect", w/h)))
			cam.Zoom = props.Float("zoom", 1)
			cam.MarkDirty()
			return nil
		},
	})

	m.rendererW = Wrap(Wrapper[Renderer]{
		Ref:   m.rendererRef,
		Props: m.camProps,
		Setup: func(_ *Resources, props Props) (Renderer, error) {
			return m.newRenderer(props)
		},
		Destroy: func(_ *Resources, _ Renderer) error { return nil },
	})
}

// viewportForAspect returns the largest rectangle of the given aspect ratio
// that fits centered inside a w x h target.
func viewportForAspect(w, h, aspect float64) Rect {
	if aspect <= 0 {
		return Rect{Width: w, Height: h}
	}
	vw, vh := w, w/aspect
	if vh > h {
		vh = h
		vw = h * aspect
	}
	return Rect{X: (w - vw) / 2, Y: (h - vh) / 2, Width: vw, Height: vh}
}

// Render implements Component. The manager mounts its three wrappers,
// collects their handles into the resource bundle, and composes its children
// below the published bundle.
func (m *SceneManager) Render(ctx *Ctx) error {
	if m.state == StateUninitialized {
		m.state = StateHandlesPending
	}

	wctx := ctx.WithResources(m.partial)
	if err := wctx.Compose(m.canvasW); err != nil {
		return err
	}
	if err := wctx.Compose(m.cameraW); err != nil {
		return err
	}
	if err := wctx.Compose(m.rendererW); err != nil {
		return err
	}

	if m.state == StateHandlesPending {
		canvas, ok1 := m.canvasRef.Get()
		camera, ok2 := m.cameraRef.Get()
		renderer, ok3 := m.rendererRef.Get()
		if !ok1 || !ok2 || !ok3 {
			return fmt.Errorf("threelove: scene manager handles incomplete after wrapper mount")
		}
		m.res = &Resources{
			Scene:    m.scene,
			Camera:   camera,
			Canvas:   canvas,
			Renderer: renderer,
		}
		m.state = StateReady
		m.log.Info("scene manager ready",
			zap.Int("width", m.cfg.Width),
			zap.Int("height", m.cfg.Height))
	}

	cctx := ctx.WithResources(m.res)
	for _, child := range m.children {
		if err := cctx.Compose(child); err != nil {
			return err
		}
	}
	return nil
}

// Update implements ebiten.Game. The first tick mounts the component tree;
// subsequent ticks run one update pass and advance camera tweens and scene
// updaters. A failed manager keeps returning its error, halting the run loop.
func (m *SceneManager) Update() error {
	switch m.state {
	case StateUninitialized:
		if err := m.tree.Mount(m); err != nil {
			m.fail(err)
			return err
		}
	case StateReady:
		if err := m.tree.Update(); err != nil {
			m.fail(err)
			return err
		}
		dt := 1.0 / float64(ebiten.TPS())
		if cam, ok := m.cameraRef.Get(); ok {
			cam.Update(dt)
		}
		m.scene.Update(dt)
	case StateFailed:
		return m.err
	}
	return nil
}

// Draw implements ebiten.Game. Frames render only in StateReady, so no frame
// ever executes against an unpopulated canvas, camera, or renderer. A nil
// screen renders into the canvas without presenting it.
func (m *SceneManager) Draw(screen *ebiten.Image) {
	if m.state != StateReady {
		return
	}
	m.res.Renderer.Render(m.scene, m.res.Camera, m.res.Canvas)
	m.frames++

	if screen == nil {
		return
	}
	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	cw := m.res.Canvas.Bounds().Dx()
	ch := m.res.Canvas.Bounds().Dy()

	scale := min(float64(sw)/float64(cw), float64(sh)/float64(ch))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(
		(float64(sw)-float64(cw)*scale)/2,
		(float64(sh)-float64(ch)*scale)/2,
	)
	screen.DrawImage(m.res.Canvas, op)
}

// Layout implements ebiten.Game. Window aspect changes flow into the camera
// wrapper's watched props; the logical screen size stays fixed at the canvas
// size.
func (m *SceneManager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		m.camProps["aspect"] = float64(outsideWidth) / float64(outsideHeight)
	}
	return m.cfg.Width, m.cfg.Height
}

// Shutdown cancels the render loop and tears down the component tree. The
// state leaves StateReady before any wrapper destroy runs, so no frame can
// render against partially torn-down handles. Safe to call more than once.
func (m *SceneManager) Shutdown() {
	switch m.state {
	case StateTornDown, StateUninitialized:
		m.state = StateTornDown
		return
	}
	m.state = StateUnmounting
	m.tree.Unmount()
	m.res = nil
	m.state = StateTornDown
	m.log.Info("scene manager torn down", zap.Uint64("frames", m.frames))
}

func (m *SceneManager) fail(err error) {
	m.err = err
	m.state = StateFailed
	m.log.Error("scene manager failed", zap.Error(err))
}

// State returns the manager's lifecycle state.
func (m *SceneManager) State() ManagerState {
	return m.state
}

// Scene returns the scene root. Valid for the manager's whole lifetime.
func (m *SceneManager) Scene() *Scene {
	return m.scene
}

// Frames returns the number of frames rendered so far.
func (m *SceneManager) Frames() uint64 {
	return m.frames
}

// Err returns the failure that moved the manager to StateFailed, if any.
func (m *SceneManager) Err() error {
	return m.err
}
