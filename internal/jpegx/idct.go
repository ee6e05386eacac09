package jpegx

// Integer IDCT after Loeffler, Ligtenberg and Moschytz, "Practical Fast 1-D DCT
// Algorithms with 11 Multiplications" (ICASSP 1989), in the fixed-point layout
// used by poppler's DCTStream.

const (
	dctCos1    = 4017 // cos(pi/16)
	dctSin1    = 799  // sin(pi/16)
	dctCos3    = 3406 // cos(3*pi/16)
	dctSin3    = 2276 // sin(3*pi/16)
	dctCos6    = 1567 // cos(6*pi/16)
	dctSin6    = 3784 // sin(6*pi/16)
	dctSqrt2   = 5793 // sqrt(2)
	dctSqrt1d2 = 2896 // sqrt(2) / 2
)

// Fixed-point stage parameters. Rows keep 4 extra fraction bits (the odd
// inputs are pre-shifted by 4), columns drop them at the final descale.
type idctPass struct {
	dcShift  uint // all-AC-zero shortcut: (sqrt2*dc + dcRound) >> dcShift
	dcRound  int
	s4Shift  uint // stage 4 multiplications
	s4Round  int
	s3Shift  uint // stage 3 even rotation
	s3Round  int
	oddShift uint // pre-shift of the 3rd and 5th inputs
}

var (
	rowPass = idctPass{dcShift: 10, dcRound: 512, s4Shift: 8, s4Round: 128, s3Shift: 8, s3Round: 128, oddShift: 4}
	colPass = idctPass{dcShift: 14, dcRound: 8192, s4Shift: 12, s4Round: 2048, s3Shift: 12, s3Round: 2048, oddShift: 0}
)

// IDCT dequantizes coefficients with a natural-order table, runs the row and
// column passes and converts the result back to unsigned 8-bit samples.
func IDCT(coef *Block, inv *[BlockSize]int32) [BlockSize]uint8 {
	var p [BlockSize]int
	for i := range p {
		p[i] = int(coef[i]) * int(inv[i])
	}

	for row := 0; row < BlockSize; row += 8 {
		idct1D(&p, row, 1, &rowPass)
	}
	for col := 0; col < 8; col++ {
		idct1D(&p, col, 8, &colPass)
	}

	var out [BlockSize]uint8
	for i, v := range p {
		out[i] = clip8(128 + ((v + 8) >> 4))
	}
	return out
}

func idct1D(p *[BlockSize]int, off, stride int, ps *idctPass) {
	at := func(i int) int { return p[off+i*stride] }

	if at(1) == 0 && at(2) == 0 && at(3) == 0 && at(4) == 0 &&
		at(5) == 0 && at(6) == 0 && at(7) == 0 {
		t := (dctSqrt2*at(0) + ps.dcRound) >> ps.dcShift
		for i := 0; i < 8; i++ {
			p[off+i*stride] = t
		}
		return
	}
	butterfly1D(p, off, stride, ps)
}

// butterfly1D is the full four stage transform. For a DC-only input its result
// can differ by one from the shortcut in idct1D.
func butterfly1D(p *[BlockSize]int, off, stride int, ps *idctPass) {
	at := func(i int) int { return p[off+i*stride] }

	// Stage 4.
	v0 := (dctSqrt2*at(0) + ps.s4Round) >> ps.s4Shift
	v1 := (dctSqrt2*at(4) + ps.s4Round) >> ps.s4Shift
	v2 := at(2)
	v3 := at(6)
	v4 := (dctSqrt1d2*(at(1)-at(7)) + ps.s4Round) >> ps.s4Shift
	v7 := (dctSqrt1d2*(at(1)+at(7)) + ps.s4Round) >> ps.s4Shift
	v5 := at(3) << ps.oddShift
	v6 := at(5) << ps.oddShift

	// Stage 3.
	t := (v0 - v1 + 1) >> 1
	v0 = (v0 + v1 + 1) >> 1
	v1 = t
	t = (v2*dctSin6 + v3*dctCos6 + ps.s3Round) >> ps.s3Shift
	v2 = (v2*dctCos6 - v3*dctSin6 + ps.s3Round) >> ps.s3Shift
	v3 = t
	t = (v4 - v6 + 1) >> 1
	v4 = (v4 + v6 + 1) >> 1
	v6 = t
	t = (v7 + v5 + 1) >> 1
	v5 = (v7 - v5 + 1) >> 1
	v7 = t

	// Stage 2.
	t = (v0 - v3 + 1) >> 1
	v0 = (v0 + v3 + 1) >> 1
	v3 = t
	t = (v1 - v2 + 1) >> 1
	v1 = (v1 + v2 + 1) >> 1
	v2 = t
	t = (v4*dctSin3 + v7*dctCos3 + 2048) >> 12
	v4 = (v4*dctCos3 - v7*dctSin3 + 2048) >> 12
	v7 = t
	t = (v5*dctSin1 + v6*dctCos1 + 2048) >> 12
	v5 = (v5*dctCos1 - v6*dctSin1 + 2048) >> 12
	v6 = t

	// Stage 1.
	p[off] = v0 + v7
	p[off+7*stride] = v0 - v7
	p[off+stride] = v1 + v6
	p[off+6*stride] = v1 - v6
	p[off+2*stride] = v2 + v5
	p[off+5*stride] = v2 - v5
	p[off+3*stride] = v3 + v4
	p[off+4*stride] = v3 - v4
}

func clip8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}
