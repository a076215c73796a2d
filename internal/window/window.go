// Package window shows a viewer scene in a desktop window using ebiten.
package window

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/softrast/internal/viewer"
	"github.com/taigrr/softrast/internal/xlog"
	"github.com/taigrr/softrast/pkg/pixel"
)

// errQuit ends RunGame cleanly.
var errQuit = errors.New("window: quit")

// Run opens a window of the scene target's size times scale and blocks until
// it is closed or Esc is pressed.
func Run(title string, scene *viewer.Scene, scale, fps int) error {
	g := NewGame(scene)
	buf := scene.Raster.Target()

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(buf.Width()*max(scale, 1), buf.Height()*max(scale, 1))
	ebiten.SetTPS(fps)

	xlog.L().Info("window opened", "title", title, "width", buf.Width(), "height", buf.Height())
	err := ebiten.RunGame(g)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// Game implements ebiten.Game over a viewer scene.
type Game struct {
	scene *viewer.Scene
	img   *ebiten.Image
	pix   []byte
}

// NewGame creates a game for scene.
func NewGame(scene *viewer.Scene) *Game {
	return &Game{scene: scene}
}

func pollInput() viewer.Input {
	var in viewer.Input
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Pitch--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Pitch++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Yaw--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Yaw++
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Roll--
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Roll++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		in.Zoom--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		in.Zoom++
	}
	in.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.NextMode = inpututil.IsKeyJustPressed(ebiten.KeyX)
	in.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return in
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.scene.Apply(pollInput()) {
		return errQuit
	}
	g.scene.Step()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	buf := g.scene.Raster.Target()
	tex := buf.Texture()
	if tex == nil {
		return
	}

	w, h := buf.Width(), buf.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}

	// ebiten wants premultiplied alpha; the texture is straight.
	g.pix = pixel.Premultiply(g.pix, tex.Pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

// Layout implements ebiten.Game. The logical screen is the target buffer;
// ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	buf := g.scene.Raster.Target()
	return buf.Width(), buf.Height()
}
