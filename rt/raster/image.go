package raster

// Color is linear RGB in [0, 1].
type Color [3]float32

// Image is the color and depth output of one render.
type Image struct {
	Width, Height int
	Pix           []Color
	Depth         []float32
}

func NewImage(width, height int) *Image {
	img := &Image{}
	img.resize(width, height)
	return img
}

func (img *Image) resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	img.Width, img.Height = width, height
	n := width * height
	if cap(img.Pix) < n {
		img.Pix = make([]Color, n)
		img.Depth = make([]float32, n)
	}
	img.Pix = img.Pix[:n]
	img.Depth = img.Depth[:n]
}

func (img *Image) At(x, y int) Color {
	return img.Pix[y*img.Width+x]
}

func (img *Image) clear(bg Color) {
	for i := range img.Pix {
		img.Pix[i] = bg
		img.Depth[i] = 1
	}
}

// Covered reports whether any geometry was drawn at (x, y).
func (img *Image) Covered(x, y int) bool {
	return img.Depth[y*img.Width+x] < 1
}
