package blend

// mulDiv255 multiplies two bytes and divides by 255, rounding to nearest.
//
// Formula: (a * b + 127) / 255
//
// The exact form is used instead of the shift approximation so that
// composited bytes match a reference implementation on every host.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two bytes and clamps to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// unpremul recovers a straight channel from a premultiplied one.
func unpremul(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// MulDiv255 is the exported form of mulDiv255 for coverage scaling.
func MulDiv255(a, b byte) byte { return mulDiv255(a, b) }
