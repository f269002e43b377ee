package imaging

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseColor converts a textual color specification into an NRGBA pixel
// value.
//
// Accepted grammars:
//   - "#RRGGBB" (leading '#' optional) — alpha derived from opacity
//   - "rgb(r,g,b)" — alpha derived from opacity
//   - "rgba(r,g,b,a)" — a in 0..1, alpha = round(a*255), overriding opacity
//
// Channel values for the rgb/rgba forms must parse as 0-255 integers;
// out-of-range values are a parse failure, never clamped. Anything else
// fails with a KindInvalidColor error naming the offending input.
func ParseColor(text string, opacity float64) (color.NRGBA, error) {
	if strings.HasPrefix(text, "rgba(") && strings.HasSuffix(text, ")") {
		inner := text[5 : len(text)-1]
		parts := strings.Split(inner, ",")
		if len(parts) != 4 {
			return color.NRGBA{}, invalidColor(text)
		}
		r, err := parseChannel(parts[0])
		if err != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		g, err := parseChannel(parts[1])
		if err != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		b, err := parseChannel(parts[2])
		if err != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, invalidColor(text)
		}
		return color.NRGBA{R: r, G: g, B: b, A: alphaByte(a)}, nil
	}

	if strings.HasPrefix(text, "rgb(") && strings.HasSuffix(text, ")") {
		inner := text[4 : len(text)-1]
		parts := strings.Split(inner, ",")
		if len(parts) != 3 {
			return color.NRGBA{}, invalidColor(text)
		}
		r, err := parseChannel(parts[0])
		if err != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		g, err := parseChannel(parts[1])
		if err != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		b, err := parseChannel(parts[2])
		if err != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		return color.NRGBA{R: r, G: g, B: b, A: alphaByte(opacity)}, nil
	}

	hex := strings.TrimPrefix(text, "#")
	if len(hex) == 6 {
		r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return color.NRGBA{}, invalidColor(text)
		}
		return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: alphaByte(opacity)}, nil
	}

	return color.NRGBA{}, invalidColor(text)
}

// parseChannel parses a single 0-255 decimal channel value.
// strconv's 8-bit limit makes out-of-range values an error, not a clamp.
func parseChannel(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func alphaByte(a float64) uint8 {
	v := math.Round(a * 255)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func invalidColor(text string) *Error {
	return NewError(KindInvalidColor, "",
		"invalid color format: %q (supported: #RRGGBB, rgb(r,g,b), rgba(r,g,b,a))", text)
}
