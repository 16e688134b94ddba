package heatmap

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// fmtNum renders a coordinate rounded to prec decimals with trailing zeros
// trimmed, so 12.50 serializes as "12.5" and 12.00 as "12". Stable output
// here is what makes whole documents byte-reproducible.
func fmtNum(v float64, prec int) string {
	p := math.Pow(10, float64(prec))
	r := math.Round(v*p) / p
	if r == 0 {
		// Avoid "-0" from rounding tiny negatives.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// hexColor renders a color as a #rrggbb hex string, ignoring alpha.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// escapeText makes a label safe for element content and attribute values.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// rect emits a filled cell rectangle.
func rect(x, y, w, h float64, fill string, prec int) string {
	return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" style="fill:%s;"/>`,
		fmtNum(x, prec), fmtNum(y, prec), fmtNum(w, prec), fmtNum(h, prec), fill)
}

// text emits a text element at the given baseline position.
func text(x, y float64, content string, prec int) string {
	return fmt.Sprintf(`<text x="%s" y="%s">%s</text>`,
		fmtNum(x, prec), fmtNum(y, prec), escapeText(content))
}

// composeDocument joins ordered fragments into one self-contained SVG with
// explicit pixel dimensions on the root element.
func composeDocument(width, height int, fragments []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d">`, width, height)
	sb.WriteString("\n")
	for _, frag := range fragments {
		sb.WriteString(frag)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}
