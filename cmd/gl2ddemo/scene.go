// cmd/gl2ddemo/scene.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	gomath "math"

	"github.com/nightcore/gl2d/pkg/log"
	"github.com/nightcore/gl2d/pkg/math"
	"github.com/nightcore/gl2d/pkg/platform"
	"github.com/nightcore/gl2d/pkg/rand"
	"github.com/nightcore/gl2d/pkg/renderer"
	"github.com/nightcore/gl2d/pkg/util"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	titleFont = "title"
	bodyFont  = "body"
	monoFont  = "mono"
)

type scene struct {
	lg *log.Logger

	checker   *renderer.Image
	sprites   []*renderer.Image
	featured  int
	drawables []renderer.Drawable

	blend     renderer.BlendMode
	paused    bool
	pauseTime float64
	mouse     [2]float32
}

func newScene(ctx *renderer.Context, lg *log.Logger) *scene {
	s := &scene{lg: lg}

	te := ctx.Text()
	// Fonts in the resources directory take precedence over the built-in
	// Go fonts.
	for _, f := range []struct {
		name, path string
		size       int
	}{
		{titleFont, "fonts/title.ttf", 40},
		{bodyFont, "fonts/body.ttf", 20},
	} {
		if assets := ctx.Assets(); assets != nil && util.ResourceExists(assets, f.path) {
			if te.LoadFont(f.name, f.path, f.size) == nil {
				continue
			}
		}
		if err := te.LoadFontBytes(f.name, goregular.TTF, f.size); err != nil {
			lg.Errorf("%v", err)
		}
	}
	if err := te.LoadFontBytes(monoFont, gomono.TTF, 16); err != nil {
		lg.Errorf("%v", err)
	}
	lg.Infof("Fonts: %v, SDF text: %v", te.FontNames(), te.UseSDF())

	s.checker = &renderer.Image{}
	if err := s.checker.LoadImage(ctx, checkerboard(64, 8), "checkerboard"); err != nil {
		lg.Errorf("%v", err)
	}
	s.checker.SetAnchorCenter()

	if assets := ctx.Assets(); assets != nil {
		paths, _ := fs.Glob(assets, "images/*.png")
		if len(paths) > 0 {
			var err error
			if s.sprites, err = renderer.LoadImages(ctx, paths); err != nil {
				lg.Warnf("%v", err)
			}
		}
	}
	s.featured = featuredSprite(rand.Make(), s.sprites)

	s.drawables = s.makeDrawables(ctx)
	return s
}

// checkerboard returns an n x n image with alternating squares of size
// cell.
func checkerboard(n, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 60, B: 60, A: 200})
			}
		}
	}
	return img
}

func (s *scene) makeDrawables(ctx *renderer.Context) []renderer.Drawable {
	highlight := renderer.RGBA{R: 1, G: 0.85, B: 0.2, A: 1}
	additive := renderer.BlendAdditive

	ds := []renderer.Drawable{
		{
			Kind:      renderer.DrawShape,
			Transform: renderer.Transform{X: 920, Y: 420, Width: 300, Height: 240},
			Shape: &renderer.Shape{
				Kind:   renderer.ShapeRoundedRectangle,
				Filled: true,
				Radius: 16,
			},
			Tint:    &renderer.RGBA{R: 0.15, G: 0.15, B: 0.25, A: 1},
			ZOrder:  0,
			Visible: true,
		},
		{
			Kind:      renderer.DrawText,
			Transform: renderer.Transform{X: 940, Y: 440},
			Text:      "Drawables",
			Font:      titleFont,
			Tint:      &highlight,
			ZOrder:    2,
			Visible:   true,
		},
		{
			Kind:      renderer.DrawShape,
			Transform: renderer.Transform{X: 1070, Y: 570},
			Shape: &renderer.Shape{
				Kind:     renderer.ShapeCircle,
				Filled:   true,
				Radius:   50,
				Segments: 48,
			},
			Tint:    &renderer.RGBA{R: 0.3, G: 0.6, B: 1, A: 0.8},
			ZOrder:  1,
			Visible: true,
		},
		{
			Kind:      renderer.DrawShape,
			Transform: renderer.Transform{X: 940, Y: 630, Width: 260},
			Shape: &renderer.Shape{
				Kind:      renderer.ShapeLine,
				Thickness: 3,
			},
			ZOrder:  1,
			Visible: true,
		},
		{
			// Hidden; shows that invisible drawables are skipped.
			Kind:      renderer.DrawText,
			Transform: renderer.Transform{X: 940, Y: 500},
			Text:      "you should not see this",
			ZOrder:    3,
		},
	}

	if s.checker.IsLoaded() {
		ds = append(ds, renderer.Drawable{
			Kind:          renderer.DrawImage,
			Image:         s.checker,
			Transform:     renderer.Transform{X: 1160, Y: 480, ScaleX: 0.75, ScaleY: 0.75, Rotation: 15},
			Blend:         &additive,
			ZOrder:        1,
			Visible:       true,
			CullOffscreen: true,
		})
		// Entirely off the screen, so culled.
		ds = append(ds, renderer.Drawable{
			Kind:          renderer.DrawImage,
			Image:         s.checker,
			Transform:     renderer.Transform{X: -500, Y: -500},
			Visible:       true,
			CullOffscreen: true,
		})
	}

	w, h := ctx.Resolution()
	return append(ds, starField(float32(w), float32(h), 80)...)
}

// featuredSprite returns the index of a randomly chosen loaded sprite,
// or -1 if none are loaded.
func featuredSprite(r rand.Rand, sprites []*renderer.Image) int {
	return rand.SampleFiltered(r, sprites, func(im *renderer.Image) bool {
		return im != nil && im.IsLoaded()
	})
}

// starField returns n small circles that draw behind the other drawables.
// The screen is split into at least n cells that are visited in a random
// order, with one star jittered within each, so the stars are spread
// evenly. The seed is fixed so the field is the same on every run.
func starField(width, height float32, n int) []renderer.Drawable {
	if n <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	r := rand.MakeSeeded(2024)
	type tone struct {
		c      renderer.RGBA
		weight int
	}
	palette := []tone{
		{c: renderer.White, weight: 6},
		{c: renderer.RGBA{R: 0.8, G: 0.85, B: 1, A: 1}, weight: 3},
		{c: renderer.RGBA{R: 1, G: 0.9, B: 0.7, A: 1}, weight: 1},
	}

	cols := int(math.Ceil(math.Sqrt(float32(n) * width / height)))
	cols = math.Clamp(cols, 1, n)
	rows := (n + cols - 1) / cols
	cw, ch := width/float32(cols), height/float32(rows)
	cells := make([][2]float32, 0, cols*rows)
	for y := range rows {
		for x := range cols {
			cells = append(cells, [2]float32{float32(x) * cw, float32(y) * ch})
		}
	}

	ds := make([]renderer.Drawable, 0, n)
	for _, cell := range rand.PermuteSlice(cells, r.Uint32()) {
		if len(ds) == n {
			break
		}
		t, _ := rand.SampleWeighted(r, palette, func(t tone) int { return t.weight })
		c := t.c.WithAlpha(r.Float32Range(0.2, 0.7))
		ds = append(ds, renderer.Drawable{
			Kind: renderer.DrawShape,
			Transform: renderer.Transform{
				X: min(cell[0]+r.Float32Range(0, cw), width),
				Y: min(cell[1]+r.Float32Range(0, ch), height),
			},
			Shape: &renderer.Shape{
				Kind:     renderer.ShapeCircle,
				Filled:   true,
				Radius:   rand.SampleSlice(r, []float32{0.5, 1, 1.5, 2}),
				Segments: 8,
			},
			Tint:    &c,
			ZOrder:  -1,
			Visible: true,
		})
	}
	return ds
}

// handleInput updates the scene from the keyboard and mouse. The mouse
// position is given in window coordinates; scale converts them to
// framebuffer pixels and vp is the viewport the scene was last drawn to.
func (s *scene) handleInput(ctx *renderer.Context, kb *platform.KeyboardState, m *platform.MouseState,
	scale float32, vp renderer.Viewport) {
	if kb.WasPressed(platform.KeySpace) {
		s.paused = !s.paused
	}
	if b, _ := platform.KeyForLetter('b'); kb.WasPressed(b) {
		s.blend = (s.blend + 1) % renderer.BlendCustom
		s.checker.SetBlendMode(s.blend)
		s.lg.Infof("Checkerboard blend mode: %s", s.blend)
	}
	if m != nil && vp.Width > 0 && vp.Height > 0 {
		w, h := ctx.Resolution()
		p := math.Scale2f(m.Pos, scale)
		s.mouse = [2]float32{
			(p[0] - float32(vp.X)) * float32(w) / float32(vp.Width),
			(p[1] - float32(vp.Y)) * float32(h) / float32(vp.Height),
		}
	}
}

func (s *scene) draw(ctx *renderer.Context, t float64) {
	if s.paused {
		t = s.pauseTime
	} else {
		s.pauseTime = t
	}
	angle := float32(gomath.Mod(t, 2*gomath.Pi))

	s.drawShapes(ctx, angle)
	s.drawImages(ctx, angle)
	s.drawText(ctx, angle)
	ctx.RenderDrawables(s.drawables)
}

func (s *scene) drawShapes(ctx *renderer.Context, angle float32) {
	box := math.Extent2D{P0: [2]float32{40, 100}, P1: [2]float32{200, 190}}
	if box.Inside(s.mouse) {
		ctx.SetColor(0.3, 0.9, 0.4, 1)
	} else {
		ctx.SetColor(0.2, 0.7, 0.3, 1)
	}
	ctx.Rectangle(true, 40, 100, 160, 90)
	ctx.SetColor(1, 1, 1, 1)
	ctx.Rectangle(false, 40, 100, 160, 90)

	ctx.WithColor(renderer.RGBA{R: 0.9, G: 0.5, B: 0.1, A: 1}).RoundedRectangle(true, 230, 100, 160, 90, 20)
	ctx.RoundedRectangle(false, 230, 100, 160, 90, 20)

	// Hue wheel of circles.
	for i := range 12 {
		c := renderer.HSVToRGB(float32(i)*30, 0.8, 1).RGBA(0.9)
		a := float32(i) * math.Pi() / 6
		ctx.WithColor(c).Circle(true, 500+60*math.Cos(a), 145-60*math.Sin(a), 14, 0)
	}
	ctx.Circle(false, 500, 145, 80, 64)

	for i, th := range []float32{1, 2, 5, 10} {
		y := 260 + float32(i)*20
		ctx.Line(40, y, 390, y+10*math.Sin(angle), th)
	}

	star := make([][2]float32, 10)
	for i := range star {
		r := util.Select[float32](i%2 == 0, 70, 30)
		a := float32(i)*math.Pi()/5 + angle
		star[i] = [2]float32{500 + r*math.Cos(a), 320 - r*math.Sin(a)}
	}
	ctx.WithColor(renderer.RGBA{R: 0.9, G: 0.8, B: 0.2, A: 1}).Polygon(true, star)
	ctx.Polygon(false, star)

	ctx.GradientRectangleHoriz(true, 40, 400, 350, 40,
		1, 0, 0, 1,
		1, 1, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1)
	ctx.GradientRectangleVert(true, 40, 460, 350, 80,
		0.1, 0.1, 0.4, 1,
		0.6, 0.8, 1, 1)
	ctx.GradientRectangleVert(false, 40, 460, 350, 80, 0, 0, 0, 1, 1, 1, 1, 1)

	ctx.Throbber(640, 620, 40, 0, angle*4)
}

func (s *scene) drawImages(ctx *renderer.Context, angle float32) {
	if s.checker.IsLoaded() {
		s.checker.RenderEx(ctx, 700, 420, 128, 128, math.Degrees(angle), 0, 0)
		s.checker.SetTint(renderer.RGBA{R: 0.5, G: 0.8, B: 1, A: 0.8})
		s.checker.RenderEx(ctx, 830, 420, -96, 96, 0, 0, 0)
		s.checker.ClearTint()
	}

	x := float32(40)
	for _, im := range s.sprites {
		if im != nil && im.IsLoaded() {
			im.Render(ctx, x, 570)
			x += float32(im.Width()) + 10
		}
	}

	if s.featured >= 0 && s.featured < len(s.sprites) {
		im := s.sprites[s.featured]
		scale := 1.5 + 0.25*math.Sin(angle)
		im.RenderEx(ctx, 1000, 150, scale*float32(im.Width()), scale*float32(im.Height()), 0, 0, 0)
	}
}

func (s *scene) drawText(ctx *renderer.Context, angle float32) {
	te := ctx.Text()
	width, _ := ctx.Resolution()

	if te.SetFont(titleFont) == nil {
		title := "gl2d renderer"
		tw, _ := ctx.TextSize(title)
		ctx.WithColor(renderer.White).Print(title, (width-tw)/2, 20)
	}

	if te.SetFont(bodyFont) == nil {
		ctx.SetColor(0.8, 0.8, 0.8, 1)
		ctx.Print("Esc quits, F toggles full screen, Space pauses, B cycles blend modes", 40, 680)
		ctx.PrintEx("rotated", 700, 560, math.Degrees(angle), 1, 1, 0, 0)
		ctx.PrintEx("stretched", 800, 560, 0, 1.5, 0.75, 0, 0)
	}

	if te.SetFont(monoFont) == nil {
		ctx.SetColor(0.6, 0.9, 0.6, 1)
		ctx.Print(fmt.Sprintf("mouse %4.0f,%4.0f  blend %s", s.mouse[0], s.mouse[1], s.blend), 40, 60)
	}
}

func (s *scene) unload() {
	s.checker.Unload()
	for _, im := range s.sprites {
		if im != nil {
			im.Unload()
		}
	}
}
