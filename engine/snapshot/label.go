package snapshot

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// labelFont is the bitmap font used by Annotate; 3×5 glyphs on a 6 px line.
var labelFont tinyfont.Fonter = &tinyfont.TomThumb

// labelMargin is the gap, in unscaled font pixels, between the label and the image corner.
const labelMargin = 2

// imageDisplay lets tinyfont draw into an NRGBA image.
type imageDisplay struct {
	img *image.NRGBA
}

var _ drivers.Displayer = imageDisplay{}

func (d imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	b := d.img.Bounds()
	d.img.SetNRGBA(b.Min.X+int(x), b.Min.Y+int(y), color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d imageDisplay) Display() error {
	return nil
}

// LabelScale returns the integer magnification Annotate uses for an image of the given width,
// so the text stays readable at any snapshot size.
func LabelScale(width int) int {
	return max(1, width/160)
}

// Annotate writes text into the top-left corner of img. The glyphs are rendered at font
// resolution and scaled up with nearest-neighbour sampling by LabelScale(width). Text that
// does not fit is clipped.
//
// Parameters:
//   - img: the image to draw on
//   - text: the label, e.g. "top view | zoom 2"
//   - c: the text color
func Annotate(img *image.NRGBA, text string, c color.RGBA) {
	if text == "" {
		return
	}
	_, width := tinyfont.LineWidth(labelFont, text)
	lineHeight := int(labelFont.GetYAdvance())
	if width == 0 || lineHeight == 0 {
		return
	}

	glyphs := image.NewNRGBA(image.Rect(0, 0, int(width), lineHeight))
	// y is the baseline; TomThumb glyphs sit one pixel above the line bottom.
	tinyfont.WriteLine(imageDisplay{img: glyphs}, labelFont, 0, int16(lineHeight-1), text, c)

	scale := LabelScale(img.Bounds().Dx())
	origin := img.Bounds().Min.Add(image.Pt(labelMargin*scale, labelMargin*scale))
	dst := image.Rectangle{
		Min: origin,
		Max: origin.Add(image.Pt(int(width)*scale, lineHeight*scale)),
	}
	draw.NearestNeighbor.Scale(img, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
}
