package raster

// GeoTransform is the GDAL-style affine mapping from pixel (col,row) to
// geographic (x,y): x = gt[0] + col*gt[1] + row*gt[2],
// y = gt[3] + col*gt[4] + row*gt[5]. All inputs here are north-up rasters,
// so the rotation terms gt[2] and gt[4] are zero.
type GeoTransform [6]float64

// Bounds describes a geographic rectangle.
type Bounds struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// PixelToGeo maps a pixel corner to geographic coordinates. Passing the
// pixel center requires col+0.5, row+0.5.
func (gt GeoTransform) PixelToGeo(col, row float64) (x, y float64) {
	x = gt[0] + col*gt[1] + row*gt[2]
	y = gt[3] + col*gt[4] + row*gt[5]
	return x, y
}

// GeoToPixel maps geographic coordinates to fractional pixel coordinates.
func (gt GeoTransform) GeoToPixel(x, y float64) (col, row float64) {
	col = (x - gt[0]) / gt[1]
	row = (y - gt[3]) / gt[5]
	return col, row
}

// GridBounds returns the geographic extent of a width x height raster
// under this transform.
func (gt GeoTransform) GridBounds(width, height int) Bounds {
	left, top := gt.PixelToGeo(0, 0)
	right, bottom := gt.PixelToGeo(float64(width), float64(height))
	return Bounds{Left: left, Bottom: bottom, Right: right, Top: top}
}

// TransformFromBounds builds the transform that maps pixel (0,0) to the
// top-left corner of b and pixel (width,height) to its bottom-right
// corner. Constructed directly from the bounds so the round trip through
// PixelToGeo reproduces b exactly.
func TransformFromBounds(b Bounds, width, height int) GeoTransform {
	return GeoTransform{
		b.Left,
		(b.Right - b.Left) / float64(width),
		0,
		b.Top,
		0,
		(b.Bottom - b.Top) / float64(height),
	}
}
