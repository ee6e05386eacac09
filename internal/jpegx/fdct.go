package jpegx

// AAN (Arai, Agui, Nakajima) forward DCT in float64, followed by quantization.
//
// Products are wrapped in explicit float64 conversions: Go permits fusing x*y+z
// into a single FMA instruction otherwise, and the rounded coefficients must not
// depend on the target architecture.

const (
	fc2mc6 = 0.5411961   // c2 - c6
	fc2pc6 = 1.306562965 // c2 + c6
	fc4    = 0.707106781 // c4
	fc6    = 0.382683433 // c6
)

// FDCT runs the separable 2D forward transform on a level-shifted block and
// quantizes each output with the matching forward multiplier. Coefficients are
// rounded half away from zero.
func FDCT(src *Block, fwd *[BlockSize]float64) Block {
	var data [BlockSize]float64
	for i, v := range src {
		data[i] = float64(v)
	}

	// Rows.
	for off := 0; off < BlockSize; off += 8 {
		fdct1D(&data, off, 1)
	}

	// Columns.
	for off := 0; off < 8; off++ {
		fdct1D(&data, off, 8)
	}

	var out Block
	for i := range data {
		q := float64(data[i] * fwd[i])
		if q > 0 {
			out[i] = int32(q + 0.5)
		} else {
			out[i] = int32(q - 0.5)
		}
	}
	return out
}

func fdct1D(d *[BlockSize]float64, off, stride int) {
	d0 := d[off]
	d1 := d[off+stride]
	d2 := d[off+2*stride]
	d3 := d[off+3*stride]
	d4 := d[off+4*stride]
	d5 := d[off+5*stride]
	d6 := d[off+6*stride]
	d7 := d[off+7*stride]

	tmp0 := d0 + d7
	tmp7 := d0 - d7
	tmp1 := d1 + d6
	tmp6 := d1 - d6
	tmp2 := d2 + d5
	tmp5 := d2 - d5
	tmp3 := d3 + d4
	tmp4 := d3 - d4

	// Even part.
	tmp10 := tmp0 + tmp3
	tmp13 := tmp0 - tmp3
	tmp11 := tmp1 + tmp2
	tmp12 := tmp1 - tmp2

	d[off] = tmp10 + tmp11
	d[off+4*stride] = tmp10 - tmp11

	z1 := float64((tmp12 + tmp13) * fc4)
	d[off+2*stride] = tmp13 + z1
	d[off+6*stride] = tmp13 - z1

	// Odd part.
	tmp10 = tmp4 + tmp5
	tmp11 = tmp5 + tmp6
	tmp12 = tmp6 + tmp7

	// Rotator modified to avoid extra negations.
	z5 := float64((tmp10 - tmp12) * fc6)
	z2 := float64(fc2mc6*tmp10) + z5
	z4 := float64(fc2pc6*tmp12) + z5
	z3 := float64(tmp11 * fc4)

	z11 := tmp7 + z3
	z13 := tmp7 - z3

	d[off+5*stride] = z13 + z2
	d[off+3*stride] = z13 - z2
	d[off+stride] = z11 + z4
	d[off+7*stride] = z11 - z4
}
