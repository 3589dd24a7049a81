package threelove

import "github.com/hajimehoshi/ebiten/v2"

// Sprite is a minimal scene object: a textured (or solid color) quad with
// position, scale, and rotation. With a nil Image it renders a unit white
// pixel scaled by ScaleX/ScaleY, which is the idiomatic way to draw solid
// rectangles.
type Sprite struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	Color          Color
	Image          *ebiten.Image

	// OnUpdate, when set, runs once per scheduler tick via Scene.Update.
	OnUpdate func(dt float64, s *Sprite)
}

// NewSprite creates a sprite with unit scale and white color.
func NewSprite() *Sprite {
	return &Sprite{
		ScaleX: 1,
		ScaleY: 1,
		Color:  ColorWhite,
	}
}

// Update implements Updater.
func (s *Sprite) Update(dt float64) {
	if s.OnUpdate != nil {
		s.OnUpdate(dt, s)
	}
}

// Draw implements Object. The sprite's local transform is composed with the
// camera view matrix and submitted as a single DrawImage call.
func (s *Sprite) Draw(dst *ebiten.Image, view [6]float64) {
	img := s.Image
	if img == nil {
		img = WhitePixel
	}

	local := composeTransform(s.X, s.Y, s.ScaleX, s.ScaleY, s.Rotation)
	m := multiplyAffine(view, local)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])

	// Premultiply at submission time.
	a := float32(s.Color.A)
	op.ColorScale.Scale(float32(s.Color.R)*a, float32(s.Color.G)*a, float32(s.Color.B)*a, a)

	dst.DrawImage(img, op)
}
