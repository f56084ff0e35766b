package texture

import "image"

// dirtyRegion tracks the part of the surface changed since the last upload.
//
// It is either "all dirty" or a bounding rectangle. While all is set the
// rectangle is not tracked. clear resets both.
type dirtyRegion struct {
	all  bool
	rect image.Rectangle
}

// dirty reports whether anything needs uploading.
func (d *dirtyRegion) dirty() bool {
	return d.all || !d.rect.Empty()
}

func (d *dirtyRegion) setAll() {
	d.all = true
	d.rect = image.Rectangle{}
}

// add grows the rectangle to the bounding union with r.
func (d *dirtyRegion) add(r image.Rectangle) {
	if d.all || r.Empty() {
		return
	}
	if d.rect.Empty() {
		d.rect = r
		return
	}
	d.rect = d.rect.Union(r)
}

func (d *dirtyRegion) clear() {
	d.all = false
	d.rect = image.Rectangle{}
}

// region returns the rectangle to upload for a surface with bounds b.
func (d *dirtyRegion) region(b image.Rectangle) image.Rectangle {
	if d.all {
		return b
	}
	return d.rect.Intersect(b)
}
