package threelove

import "github.com/hajimehoshi/ebiten/v2"

// Renderer draws one frame of the scene from a camera's perspective into a
// destination image. The SceneManager invokes Render once per display
// refresh, and only while all shared handles are populated.
type Renderer interface {
	Render(scene *Scene, cam *Camera, dst *ebiten.Image)
}

// basicRenderer clears the target and draws every scene member in insertion
// order under the camera's view matrix.
type basicRenderer struct {
	clear Color
}

// NewRenderer returns the default renderer, clearing to the given color
// before each frame.
func NewRenderer(clear Color) Renderer {
	return &basicRenderer{clear: clear}
}

func (r *basicRenderer) Render(scene *Scene, cam *Camera, dst *ebiten.Image) {
	if dst == nil {
		return
	}
	dst.Fill(r.clear.toRGBA())

	view := identityTransform
	if cam != nil {
		view = cam.ViewMatrix()
	}
	for _, obj := range scene.Objects() {
		obj.Draw(dst, view)
	}
}
