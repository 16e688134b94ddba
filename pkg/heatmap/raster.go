package heatmap

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/svg-heatmap/server/pkg/colormap"
)

// rasterLegend draws the legend block into a bitmap and embeds it as a
// base64 PNG data URI. Tick text uses a bitmap face, so the result matches
// the appearance of raster-rendered colorbars at the cost of a larger
// document.
type rasterLegend struct {
	encode func(image.Image) ([]byte, error)
}

func newRasterLegend() rasterLegend {
	return rasterLegend{encode: encodePNG}
}

func (rl rasterLegend) render(r Range, cm colormap.Colormap, lay layout) ([]string, error) {
	w := int(math.Ceil(lay.legendW))
	h := int(math.Ceil(lay.legendH()))
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}

	dc := gg.NewContext(w, h)
	barW := 0.25 * float64(w)

	// One horizontal band per pixel row, top row = maximum.
	for y := 0; y < h; y++ {
		t := 1 - float64(y)/float64(h-1)
		dc.SetColor(cm.At(t))
		dc.DrawRectangle(0, float64(y), barW, 1)
		dc.Fill()
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.Black)
	ascent := float64(basicfont.Face7x13.Ascent)
	for _, tick := range legendTicks(r) {
		y := (1 - tick.pos) * float64(h)
		if y < ascent {
			y = ascent
		}
		dc.DrawString(fmtNum(tick.value, lay.prec), barW+3, y)
	}

	data, err := rl.encode(dc.Image())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLegendRender, err)
	}

	frag := fmt.Sprintf(`<image x="%s" y="0" width="%d" height="%d" xlink:href="data:image/png;base64,%s"/>`,
		fmtNum(lay.legendX(), lay.prec), w, h, base64.StdEncoding.EncodeToString(data))
	return []string{frag}, nil
}

var pngBufPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 32*1024))
	},
}

func encodePNG(img image.Image) ([]byte, error) {
	buf := pngBufPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		pngBufPool.Put(buf)
	}()

	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(buf, img); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
