// pkg/renderer/image_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 128})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newImageContext(t *testing.T) (*Context, *fakeRenderer) {
	t.Helper()
	assets := fstest.MapFS{
		"images/a.png":   &fstest.MapFile{Data: encodePNG(t, 4, 2)},
		"images/b.png":   &fstest.MapFile{Data: encodePNG(t, 8, 8)},
		"images/bad.png": &fstest.MapFile{Data: []byte("not a png")},
	}
	return newTestContext(t, Options{Assets: assets})
}

// pixelPos returns the pixel-space position of a vertex drawn in ctx.
func pixelPos(ctx *Context, v Vertex) [2]float32 {
	x, y := ToPixel(v.X, v.Y, ctx.width, ctx.height)
	return [2]float32{x, y}
}

func TestImageLoad(t *testing.T) {
	ctx, r := newImageContext(t)

	var im Image
	if err := im.Load(ctx, "images/a.png"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !im.IsLoaded() || im.Texture() == 0 {
		t.Fatalf("image not loaded")
	}
	if im.Width() != 4 || im.Height() != 2 || im.NaturalWidth() != 4 || im.NaturalHeight() != 2 {
		t.Errorf("unexpected size %dx%d (natural %dx%d)", im.Width(), im.Height(), im.NaturalWidth(), im.NaturalHeight())
	}

	spec := r.textures[im.Texture()]
	if spec.Format != TextureRGBA8 || spec.Width != 4 || spec.Height != 2 {
		t.Errorf("unexpected texture %+v", spec)
	}
	// Half-transparent red comes out premultiplied.
	if px := spec.Pix[:4]; px[0] != 128 || px[1] != 0 || px[3] != 128 {
		t.Errorf("expected premultiplied pixel; got %v", px)
	}

	im.SetDimensions(10, -3)
	if im.Width() != 10 || im.Height() != 0 {
		t.Errorf("SetDimensions gave %dx%d", im.Width(), im.Height())
	}
}

func TestImageReload(t *testing.T) {
	ctx, r := newImageContext(t)
	baseline := len(r.textures)

	var im Image
	for range 20 {
		if err := im.Load(ctx, "images/a.png"); err != nil {
			t.Fatalf("Load: %v", err)
		}
		if im.Texture() == 0 || im.Width() != 4 || im.Height() != 2 {
			t.Fatalf("reload gave tex %d, %dx%d", im.Texture(), im.Width(), im.Height())
		}
		if len(r.textures) != baseline+1 {
			t.Fatalf("%d live textures after reload", len(r.textures))
		}
	}
	im.Unload()
	im.Unload()
	if len(r.textures) != baseline {
		t.Errorf("%d live textures after unload, expected %d", len(r.textures), baseline)
	}
	if im.Width() != 0 || im.Height() != 0 || im.NaturalWidth() != 0 || im.NaturalHeight() != 0 || im.Name() != "" {
		t.Errorf("unloaded image kept %q %dx%d (natural %dx%d)", im.Name(), im.Width(), im.Height(),
			im.NaturalWidth(), im.NaturalHeight())
	}
}

func TestImageLoadFailure(t *testing.T) {
	ctx, r := newImageContext(t)

	var im Image
	im.SetAnchorCenter()
	for _, path := range []string{"images/missing.png", "images/bad.png"} {
		if err := im.Load(ctx, "images/b.png"); err != nil {
			t.Fatal(err)
		}
		if err := im.Load(ctx, path); err == nil {
			t.Errorf("%s: expected error", path)
		}
		if im.IsLoaded() {
			t.Errorf("%s: image left loaded after failure", path)
		}
		if im.Width() != 0 || im.Height() != 0 || im.NaturalWidth() != 0 || im.NaturalHeight() != 0 {
			t.Errorf("%s: failed load left size %dx%d (natural %dx%d)", path, im.Width(), im.Height(),
				im.NaturalWidth(), im.NaturalHeight())
		}
		if im.Name() != "" {
			t.Errorf("%s: failed load left name %q", path, im.Name())
		}
	}
	if im.anchor != AnchorCenter {
		t.Errorf("failed load reset the anchor")
	}
	if len(r.textures) != 0 {
		t.Errorf("failed load leaked %d textures", len(r.textures))
	}

	im.Render(ctx, 10, 10)
	if len(r.draws) != 0 {
		t.Errorf("unloaded image was drawn")
	}

	if err := im.LoadImage(ctx, image.NewRGBA(image.Rect(0, 0, 0, 0)), "empty"); err == nil {
		t.Errorf("expected error loading an empty image")
	}
}

func TestImageFlip(t *testing.T) {
	ctx, r := newImageContext(t)
	var im Image
	if err := im.Load(ctx, "images/a.png"); err != nil {
		t.Fatal(err)
	}

	im.RenderEx(ctx, 100, 50, 40, 20, 0, 0, 0)
	normal := r.lastDraw(t).verts
	im.RenderEx(ctx, 100, 50, -40, 20, 0, 0, 0)
	flipX := r.lastDraw(t).verts
	im.RenderEx(ctx, 100, 50, 40, -20, 0, 0, 0)
	flipY := r.lastDraw(t).verts

	if len(normal) != 6 || len(flipX) != 6 || len(flipY) != 6 {
		t.Fatalf("expected two triangles per draw")
	}
	for i := range normal {
		n, fx, fy := normal[i], flipX[i], flipY[i]
		if n.X != fx.X || n.Y != fx.Y || n.X != fy.X || n.Y != fy.Y {
			t.Errorf("vertex %d: flipping changed geometry", i)
		}
		if fx.U != 1-n.U || fx.V != n.V {
			t.Errorf("vertex %d: horizontal flip uv (%f,%f), normal (%f,%f)", i, fx.U, fx.V, n.U, n.V)
		}
		if fy.V != 1-n.V || fy.U != n.U {
			t.Errorf("vertex %d: vertical flip uv (%f,%f), normal (%f,%f)", i, fy.U, fy.V, n.U, n.V)
		}
	}

	p0, p2 := pixelPos(ctx, normal[0]), pixelPos(ctx, normal[2])
	if !approxEqual(p0[0], 100) || !approxEqual(p0[1], 50) || !approxEqual(p2[0], 140) || !approxEqual(p2[1], 70) {
		t.Errorf("unexpected corners %v %v", p0, p2)
	}
}

func TestImageAnchorRotation(t *testing.T) {
	ctx, r := newImageContext(t)
	var im Image
	if err := im.Load(ctx, "images/a.png"); err != nil {
		t.Fatal(err)
	}

	im.SetAnchorCenter()
	im.Render(ctx, 400, 300)
	if p := pixelPos(ctx, r.lastDraw(t).verts[0]); !approxEqual(p[0], 398) || !approxEqual(p[1], 299) {
		t.Errorf("center anchor: upper left at %v", p)
	}

	im.SetAnchorCustom(1, 1)
	im.Render(ctx, 400, 300)
	if p := pixelPos(ctx, r.lastDraw(t).verts[0]); !approxEqual(p[0], 399) || !approxEqual(p[1], 299) {
		t.Errorf("custom anchor: upper left at %v", p)
	}

	// Explicit origin parameters override the anchor for the draw.
	im.RenderEx(ctx, 400, 300, -1, -1, 0, 4, 2)
	if p := pixelPos(ctx, r.lastDraw(t).verts[0]); !approxEqual(p[0], 396) || !approxEqual(p[1], 298) {
		t.Errorf("origin override: upper left at %v", p)
	}

	// Clockwise rotation by 90 degrees about the upper left takes the
	// upper right corner below the anchor.
	im.SetAnchorTopLeft()
	im.RenderEx(ctx, 100, 100, -1, -1, 90, 0, 0)
	if p := pixelPos(ctx, r.lastDraw(t).verts[1]); !approxEqual(p[0], 100) || !approxEqual(p[1], 104) {
		t.Errorf("rotated upper right corner at %v", p)
	}
}

func TestImageTintBlend(t *testing.T) {
	ctx, r := newImageContext(t)
	var im Image
	if err := im.Load(ctx, "images/a.png"); err != nil {
		t.Fatal(err)
	}

	im.Render(ctx, 0, 0)
	d := r.lastDraw(t)
	if c := d.verts[0]; c.R != 1 || c.G != 1 || c.B != 1 || c.A != 1 {
		t.Errorf("untinted image drawn with %+v", c)
	}
	if d.blend != StandardBlend || d.texture != im.Texture() {
		t.Errorf("unexpected draw state %+v", d)
	}
	// Premultiplied texels are still scaled by source alpha.
	if StandardBlend.Src != BlendSrcAlpha || StandardBlend.Dst != BlendOneMinusSrcAlpha {
		t.Errorf("unexpected standard blend %+v", StandardBlend)
	}

	tint := RGBA{R: 0.5, G: 0.25, B: 1, A: 0.75}
	im.SetTint(tint)
	im.Render(ctx, 0, 0)
	if c := r.lastDraw(t).verts[3]; c.R != tint.R || c.G != tint.G || c.B != tint.B || c.A != tint.A {
		t.Errorf("tinted image drawn with %+v", c)
	}
	im.ClearTint()
	if _, ok := im.Tint(); ok {
		t.Errorf("tint still set after ClearTint")
	}

	for _, test := range []struct {
		mode BlendMode
		want BlendFunc
	}{
		{BlendAdditive, BlendFunc{Src: BlendSrcAlpha, Dst: BlendOne}},
		{BlendMultiply, BlendFunc{Src: BlendDstColor, Dst: BlendOneMinusSrcAlpha}},
		{BlendScreen, BlendFunc{Src: BlendOne, Dst: BlendOneMinusSrcColor}},
		{BlendNormal, StandardBlend},
	} {
		im.SetBlendMode(test.mode)
		im.Render(ctx, 0, 0)
		if d := r.lastDraw(t); d.blend != test.want {
			t.Errorf("%s: drew with %+v, expected %+v", test.mode, d.blend, test.want)
		}
		if r.blend != StandardBlend {
			t.Errorf("%s: blend not restored; left %+v", test.mode, r.blend)
		}
	}

	im.SetCustomBlend(BlendZero, BlendSrcColor)
	im.Render(ctx, 0, 0)
	if d := r.lastDraw(t); im.BlendMode() != BlendCustom || d.blend != (BlendFunc{Src: BlendZero, Dst: BlendSrcColor}) {
		t.Errorf("custom blend drew with %+v", d.blend)
	}
	if r.blend != StandardBlend {
		t.Errorf("custom blend not restored")
	}
}

func TestImageOversize(t *testing.T) {
	ctx, r := newImageContext(t)
	r.maxTextureSize = 2

	var im Image
	if err := im.Load(ctx, "images/a.png"); err != nil {
		t.Fatal(err)
	}
	spec := r.textures[im.Texture()]
	if spec.Width > 2 || spec.Height > 2 {
		t.Errorf("texture %dx%d exceeds maximum size", spec.Width, spec.Height)
	}
	if im.Width() != 4 || im.Height() != 2 {
		t.Errorf("drawn size changed to %dx%d", im.Width(), im.Height())
	}
}

func TestLoadImages(t *testing.T) {
	ctx, r := newImageContext(t)

	images, err := LoadImages(ctx, []string{"images/a.png", "images/missing.png", "images/b.png"})
	if err == nil {
		t.Errorf("expected an error for the missing image")
	}
	if len(images) != 3 {
		t.Fatalf("got %d images", len(images))
	}
	if !images[0].IsLoaded() || images[1].IsLoaded() || !images[2].IsLoaded() {
		t.Errorf("unexpected loaded state: %v %v %v", images[0].IsLoaded(), images[1].IsLoaded(), images[2].IsLoaded())
	}
	if images[2].Width() != 8 || images[2].Name() != "images/b.png" {
		t.Errorf("unexpected image %q %dx%d", images[2].Name(), images[2].Width(), images[2].Height())
	}
	if len(r.textures) != 2 {
		t.Errorf("%d textures created", len(r.textures))
	}
}
