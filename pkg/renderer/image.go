// pkg/renderer/image.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"runtime"

	"github.com/nightcore/gl2d/pkg/math"
	"github.com/nightcore/gl2d/pkg/util"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendMultiply
	BlendScreen
	BlendCustom
)

func (b BlendMode) String() string {
	names := [...]string{"Normal", "Additive", "Multiply", "Screen", "Custom"}
	if b < 0 || int(b) >= len(names) {
		return fmt.Sprintf("BlendMode(%d)", b)
	}
	return names[b]
}

type AnchorMode int

const (
	AnchorTopLeft AnchorMode = iota
	AnchorCenter
	AnchorCustom
)

// Image is a texture loaded from an image file along with the state that
// controls how it's drawn. The zero value is an unloaded image; drawing
// it does nothing.
type Image struct {
	r     Renderer
	texId uint32
	name  string

	naturalWidth, naturalHeight int
	width, height               int

	tint    RGBA
	hasTint bool

	blend       BlendMode
	customBlend BlendFunc

	anchor  AnchorMode
	hotspot [2]float32
}

// LoadImages loads the images at the given paths, decoding them
// concurrently. Uploads happen on the calling goroutine, which must own
// the graphics context. All of the returned images are non-nil; those
// that failed to load are unloaded and the first error is returned.
func LoadImages(ctx *Context, paths []string) ([]*Image, error) {
	decoded := make([]image.Image, len(paths))

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		eg.Go(func() error {
			img, err := decodeImage(ctx.Assets(), path)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		ctx.lg.Errorf("%v", err)
	}

	images := make([]*Image, len(paths))
	for i, path := range paths {
		images[i] = &Image{}
		if decoded[i] == nil {
			continue
		}
		if lerr := images[i].LoadImage(ctx, decoded[i], path); lerr != nil && err == nil {
			err = lerr
		}
	}
	return images, err
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%s: no assets file system", path)
	}
	b, err := util.LoadResourceBytes(fsys, path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Load releases any texture the image holds and loads the image file at
// path from the context's assets. On failure, the image is left
// unloaded.
func (im *Image) Load(ctx *Context, path string) error {
	im.Unload()

	img, err := decodeImage(ctx.Assets(), path)
	if err != nil {
		ctx.lg.Errorf("Failed to load image: %v", err)
		return err
	}
	return im.LoadImage(ctx, img, path)
}

// LoadImage is like Load but takes an already decoded image.
func (im *Image) LoadImage(ctx *Context, img image.Image, name string) error {
	im.Unload()

	nx, ny := img.Bounds().Dx(), img.Bounds().Dy()
	if nx == 0 || ny == 0 {
		err := fmt.Errorf("%s: empty image", name)
		ctx.lg.Errorf("%v", err)
		return err
	}

	src := img
	if maxSize := ctx.r.MaxTextureSize(); maxSize > 0 && (nx > maxSize || ny > maxSize) {
		ctx.lg.Warnf("%s: %dx%d image exceeds maximum texture size %d; resampling", name, nx, ny, maxSize)
		src = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.MitchellNetravali)
	}

	// Drawing into an image.RGBA premultiplies the colors by alpha.
	rgba := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	texId, err := ctx.r.CreateTexture(TextureSpec{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Format: TextureRGBA8,
		Pix:    rgba.Pix,
	})
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		ctx.lg.Errorf("Failed to create texture: %v", err)
		return err
	}

	im.r, im.texId, im.name = ctx.r, texId, name
	im.naturalWidth, im.naturalHeight = nx, ny
	im.width, im.height = nx, ny
	ctx.lg.Debugf("Loaded image %s: %dx%d, tex id %d", name, nx, ny, texId)
	return nil
}

// Unload releases the image's texture and resets its size. The tint,
// blend mode, and anchor are kept.
func (im *Image) Unload() {
	if im.texId != 0 {
		im.r.DestroyTexture(im.texId)
		im.texId = 0
	}
	im.name = ""
	im.width, im.height = 0, 0
	im.naturalWidth, im.naturalHeight = 0, 0
}

func (im *Image) IsLoaded() bool  { return im.texId != 0 }
func (im *Image) Texture() uint32 { return im.texId }
func (im *Image) Name() string    { return im.name }

// Width returns the width the image is drawn at by default; it is the
// decoded width unless it has been overridden.
func (im *Image) Width() int {
	return im.width
}

func (im *Image) Height() int {
	return im.height
}

func (im *Image) NaturalWidth() int {
	return im.naturalWidth
}

func (im *Image) NaturalHeight() int {
	return im.naturalHeight
}

func (im *Image) SetWidth(w int) {
	im.width = max(0, w)
}

func (im *Image) SetHeight(h int) {
	im.height = max(0, h)
}

func (im *Image) SetDimensions(w, h int) {
	im.SetWidth(w)
	im.SetHeight(h)
}

// SetTint sets a color that multiplies the image's pixels until
// ClearTint is called.
func (im *Image) SetTint(c RGBA) {
	im.tint, im.hasTint = c, true
}

func (im *Image) ClearTint() {
	im.tint, im.hasTint = RGBA{}, false
}

// Tint returns the current tint and whether one is set.
func (im *Image) Tint() (RGBA, bool) {
	return im.tint, im.hasTint
}

func (im *Image) SetBlendMode(b BlendMode) {
	im.blend = b
}

// SetCustomBlend switches the image to BlendCustom with the given
// factors.
func (im *Image) SetCustomBlend(src, dst BlendFactor) {
	im.blend = BlendCustom
	im.customBlend = BlendFunc{Src: src, Dst: dst}
}

func (im *Image) BlendMode() BlendMode {
	return im.blend
}

// BlendFunc returns the blend factors for the image's blend mode.
func (im *Image) BlendFunc() BlendFunc {
	switch im.blend {
	case BlendAdditive:
		return BlendFunc{Src: BlendSrcAlpha, Dst: BlendOne}
	case BlendMultiply:
		return BlendFunc{Src: BlendDstColor, Dst: BlendOneMinusSrcAlpha}
	case BlendScreen:
		return BlendFunc{Src: BlendOne, Dst: BlendOneMinusSrcColor}
	case BlendCustom:
		return im.customBlend
	default:
		return StandardBlend
	}
}

func (im *Image) SetAnchorTopLeft() {
	im.anchor, im.hotspot = AnchorTopLeft, [2]float32{}
}

func (im *Image) SetAnchorCenter() {
	im.anchor, im.hotspot = AnchorCenter, [2]float32{}
}

// SetAnchorCustom anchors the image at the given offset from its
// top-left corner.
func (im *Image) SetAnchorCustom(x, y float32) {
	im.anchor, im.hotspot = AnchorCustom, [2]float32{x, y}
}

// Render draws the image at its current size with its anchor at (x, y).
func (im *Image) Render(ctx *Context, x, y float32) {
	im.RenderEx(ctx, x, y, -1, -1, 0, 0, 0)
}

// RenderEx draws the image with its anchor at (x, y). A width or height
// of -1 uses the image's current size; other negative values flip the
// image along that axis. The image is rotated by rotation degrees
// clockwise about the anchor. If originX or originY is non-zero, that
// offset from the top-left corner is used as the anchor for this draw.
func (im *Image) RenderEx(ctx *Context, x, y, width, height, rotation, originX, originY float32) {
	if width == -1 {
		width = float32(im.width)
	}
	if height == -1 {
		height = float32(im.height)
	}
	im.render(ctx, x, y, width, height, rotation, originX, originY)
}

// render is RenderEx with the size already resolved; any negative width
// or height flips the image.
func (im *Image) render(ctx *Context, x, y, width, height, rotation, originX, originY float32) {
	if im.texId == 0 {
		return
	}

	p, flipX, flipY := im.quad(x, y, width, height, rotation, originX, originY)

	u0, u1 := float32(0), float32(1)
	if flipX {
		u0, u1 = u1, u0
	}
	v0, v1 := float32(0), float32(1)
	if flipY {
		v0, v1 = v1, v0
	}
	uv := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

	tint := White
	if im.hasTint {
		tint = im.tint
	}

	vb := GetVerticesDrawBuilder(ctx.width, ctx.height)
	defer ReturnVerticesDrawBuilder(vb)
	vb.AddTexturedQuad(p, uv, tint)

	ctx.batch.DrawBlended(Triangles, vb.Vertices(), im.texId, false, im.BlendFunc())
	if im.blend != BlendNormal && ctx.batch.Initialized() {
		ctx.r.SetBlend(StandardBlend)
	}
}

// quad returns the pixel-space corners of the image as render would
// draw it, clockwise from the corner where the texture's origin goes,
// and whether it is flipped along each axis.
func (im *Image) quad(x, y, width, height, rotation, originX, originY float32) (p [4][2]float32, flipX, flipY bool) {
	flipX, flipY = width < 0, height < 0
	width, height = math.Abs(width), math.Abs(height)

	var origin [2]float32
	switch im.anchor {
	case AnchorCenter:
		origin = [2]float32{width / 2, height / 2}
	case AnchorCustom:
		origin = im.hotspot
	}
	if originX != 0 || originY != 0 {
		origin = [2]float32{originX, originY}
	}

	p = [4][2]float32{
		{-origin[0], -origin[1]},
		{width - origin[0], -origin[1]},
		{width - origin[0], height - origin[1]},
		{-origin[0], height - origin[1]},
	}
	rot := math.Rotator2f(rotation)
	for i := range p {
		if rotation != 0 {
			p[i] = rot(p[i])
		}
		p[i] = math.Add2f(p[i], [2]float32{x, y})
	}
	return
}
