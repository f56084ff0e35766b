// Package ebiten implements gpu.Device on top of ebiten v2.
//
// Each texture is an *ebiten.Image at its power-of-two size. Uploads
// convert packed rows to premultiplied RGBA and write the sub-image;
// draws scale the clip sub-image onto the frame target with a GeoM.
//
// Call SetTarget with the screen image at the start of every Draw
// callback of the ebiten game.
package ebiten

import (
	"fmt"
	"image"

	"github.com/gogpu/retro"
	"github.com/gogpu/retro/backend"
	"github.com/gogpu/retro/gpu"
	"github.com/gogpu/retro/pixfmt"
	"github.com/hajimehoshi/ebiten/v2"
)

func init() {
	backend.Register(backend.NameEbiten, func() gpu.Device { return New() })
}

type texture struct {
	img    *ebiten.Image
	format pixfmt.Format
}

// Device draws textures with ebiten. It must be used from the ebiten
// game goroutine.
type Device struct {
	textures map[gpu.Handle]*texture
	next     gpu.Handle
	target   *ebiten.Image
	opts     ebiten.DrawImageOptions
}

// New creates an ebiten device without a target.
func New() *Device {
	return &Device{textures: make(map[gpu.Handle]*texture)}
}

// Name implements gpu.Device.
func (d *Device) Name() string { return backend.NameEbiten }

// SetTarget sets the image draws render into, usually the screen passed
// to ebiten.Game.Draw.
func (d *Device) SetTarget(screen *ebiten.Image) { d.target = screen }

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(desc gpu.TextureDesc) (gpu.Handle, error) {
	w, h := desc.Width(), desc.Height()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("ebiten: invalid texture size %dx%d", w, h)
	}
	d.next++
	d.textures[d.next] = &texture{
		img:    ebiten.NewImage(w, h),
		format: desc.Format,
	}
	retro.Logger().Debug("ebiten: texture created", "handle", d.next, "w", w, "h", h)
	return d.next, nil
}

// UploadRegion implements gpu.Device.
func (d *Device) UploadRegion(h gpu.Handle, r image.Rectangle, data []byte, pitch int) error {
	tex, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	if !r.In(tex.img.Bounds()) {
		return fmt.Errorf("%w: %v not in %v", gpu.ErrRegionOutOfBounds, r, tex.img.Bounds())
	}
	pix := tex.format.ConvertRect(data, pitch, r.Dx(), r.Dy(), true)
	tex.img.SubImage(r).(*ebiten.Image).WritePixels(pix)
	return nil
}

// Draw implements gpu.Device.
func (d *Device) Draw(h gpu.Handle, op gpu.DrawOp) error {
	if d.target == nil {
		return gpu.ErrNoTarget
	}
	tex, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	src := op.Src.Intersect(tex.img.Bounds())
	if src.Empty() || op.Dst.Empty() {
		return nil
	}

	d.opts = ebiten.DrawImageOptions{}
	d.opts.GeoM = geoM(src, op.Dst)
	d.opts.Filter = filter(op.Filter)
	d.target.DrawImage(tex.img.SubImage(src).(*ebiten.Image), &d.opts)
	return nil
}

// DestroyTexture implements gpu.Device.
func (d *Device) DestroyTexture(h gpu.Handle) {
	tex, ok := d.textures[h]
	if !ok {
		return
	}
	tex.img.Deallocate()
	delete(d.textures, h)
}

// geoM maps the source rectangle, drawn from its own origin, onto dst.
func geoM(src, dst image.Rectangle) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	m.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	return m
}

func filter(f gpu.Filter) ebiten.Filter {
	if f == gpu.FilterLinear {
		return ebiten.FilterLinear
	}
	return ebiten.FilterNearest
}
