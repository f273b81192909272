// Package blend implements the compositing operators used by the rug
// renderer on 8-bit premultiplied RGBA.
//
// All blend operations work with premultiplied alpha values in the range
// 0-255 and use integer arithmetic only, so results are identical on every
// platform.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// BlendMode selects a compositing operation.
type BlendMode uint8

const (
	BlendClear           BlendMode = iota // Result: 0
	BlendSource                           // Result: S
	BlendSourceOver                       // Result: S + D*(1-Sa) [default]
	BlendDestinationOver                  // Result: S*(1-Da) + D
	BlendMultiply                         // Result: separable Cs*Cb
	BlendScreen                           // Result: separable 1-(1-Cs)(1-Cb)
)

// String returns the canvas name of the mode.
func (m BlendMode) String() string {
	switch m {
	case BlendClear:
		return "clear"
	case BlendSource:
		return "copy"
	case BlendSourceOver:
		return "source-over"
	case BlendDestinationOver:
		return "destination-over"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// BlendFunc is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
//
// Returns: resulting color (r, g, b, a) after blending.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetBlendFunc returns the blend function for the given mode.
// Returns blendSourceOver for unknown modes.
func GetBlendFunc(mode BlendMode) BlendFunc {
	switch mode {
	case BlendClear:
		return blendClear
	case BlendSource:
		return blendSource
	case BlendDestinationOver:
		return blendDestinationOver
	case BlendMultiply:
		return blendMultiply
	case BlendScreen:
		return blendScreen
	default:
		return blendSourceOver
	}
}

// Scale multiplies a premultiplied color by a coverage value.
func Scale(r, g, b, a, coverage byte) (byte, byte, byte, byte) {
	if coverage == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, coverage), mulDiv255(g, coverage), mulDiv255(b, coverage), mulDiv255(a, coverage)
}

// Premultiply converts a straight-alpha color to premultiplied form.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	if a == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a
}

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 255 {
		return sr, sg, sb, sa
	}
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// blendDestinationOver composites destination over source.
// Formula: S * (1 - Da) + D
func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), dr),
		addDiv255(mulDiv255(sg, invDa), dg),
		addDiv255(mulDiv255(sb, invDa), db),
		addDiv255(mulDiv255(sa, invDa), da)
}

// separableBlend applies a per-channel blend function B(Cs, Cb) with the
// general compositing formula
//
//	Co = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb)
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, blendChan func(s, d byte) byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	br := blendChan(unpremul(sr, sa), unpremul(dr, da))
	bg := blendChan(unpremul(sg, sa), unpremul(dg, da))
	bb := blendChan(unpremul(sb, sa), unpremul(db, da))

	invSa := 255 - sa
	invDa := 255 - da
	saDa := mulDiv255(sa, da)

	r := addDiv255(addDiv255(mulDiv255(dr, invSa), mulDiv255(sr, invDa)), mulDiv255(saDa, br))
	g := addDiv255(addDiv255(mulDiv255(dg, invSa), mulDiv255(sg, invDa)), mulDiv255(saDa, bg))
	b := addDiv255(addDiv255(mulDiv255(db, invSa), mulDiv255(sb, invDa)), mulDiv255(saDa, bb))
	a := addDiv255(sa, mulDiv255(da, invSa))
	return r, g, b, a
}

// blendMultiply darkens the backdrop by the source.
// Formula: B(Cb, Cs) = Cb * Cs
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

// blendScreen lightens the backdrop by the source.
// Formula: B(Cb, Cs) = 1 - (1 - Cb) * (1 - Cs)
func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return 255 - mulDiv255(255-s, 255-d)
	})
}
