package blockquant

import "github.com/vearutop/blockquant/internal/jpegx"

// SessionOptions controls the initial state of a Session.
type SessionOptions struct {
	Quality int // quantization quality (1-100)
	Phase   int // highest zig-zag rank kept in the reconstruction (0-63)
	// Tables overrides the quality-derived tables, for example with TablesFromJPEG.
	Tables *Tables
}

// Session tracks one block under inspection: its coefficients at the current
// quality and the phase used for progressive reconstruction.
//
// Coefficients are recomputed when the block or the quality changes, a phase
// change only affects which ranks are kept. Session is not safe for concurrent use.
type Session struct {
	block   PixelBlock
	quality int
	phase   int
	tables  Tables
	coef    CoefficientBlock
}

// PhaseView describes the contribution of a single zig-zag rank.
type PhaseView struct {
	Rank        int        `json:"rank"`
	Natural     int        `json:"natural"`
	Coefficient int32      `json:"coefficient"`
	Block       PixelBlock `json:"block"`
	// Zero is set when the coefficient at this rank quantized to zero.
	Zero bool `json:"zero"`
	// Active is set when the rank is kept by the current phase.
	Active bool `json:"active"`
}

// NewSession creates a session for a block.
func NewSession(b PixelBlock, opts ...func(o *SessionOptions)) *Session {
	opt := SessionOptions{
		Quality: defaultQuality,
		Phase:   defaultPhase,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	s := &Session{
		block: b,
		phase: clampPhase(opt.Phase),
	}
	if opt.Tables != nil {
		s.quality = opt.Tables.Quality
		s.tables = *opt.Tables
	} else {
		s.tables = CachedQuantizationTables(opt.Quality)
		s.quality = s.tables.Quality
	}
	s.update()
	return s
}

// Block returns the source block.
func (s *Session) Block() PixelBlock { return s.block }

// Quality returns the clamped quality, 0 for external tables.
func (s *Session) Quality() int { return s.quality }

// Phase returns the current phase.
func (s *Session) Phase() int { return s.phase }

// Tables returns the tables in use.
func (s *Session) Tables() Tables { return s.tables }

// Coefficients returns the quantized coefficients of the source block.
func (s *Session) Coefficients() CoefficientBlock { return s.coef }

// SetBlock replaces the source block.
func (s *Session) SetBlock(b PixelBlock) {
	if b == s.block {
		return
	}
	s.block = b
	s.update()
}

// SetQuality rebuilds tables and coefficients when the clamped quality differs.
func (s *Session) SetQuality(quality int) {
	t := CachedQuantizationTables(quality)
	if t.Quality == s.quality {
		return
	}
	s.quality = t.Quality
	s.tables = t
	s.update()
}

// SetTables switches to external tables.
func (s *Session) SetTables(t Tables) {
	s.tables = t
	s.quality = t.Quality
	s.update()
}

// SetPhase sets the highest rank kept in the reconstruction, clamped to [0, 63].
func (s *Session) SetPhase(phase int) {
	s.phase = clampPhase(phase)
}

// Reconstruction returns the block rebuilt from ranks [0, phase].
func (s *Session) Reconstruction() PixelBlock {
	return Reconstruct(s.coef, s.tables, 0, s.phase+1)
}

// NonZero counts non-zero coefficients within ranks [0, phase].
func (s *Session) NonZero() int {
	return MaskCoefficients(s.coef, 0, s.phase+1).NonZero()
}

// Phases returns the isolated contribution of every zig-zag rank.
func (s *Session) Phases() []PhaseView {
	views := make([]PhaseView, 0, BlockSize)
	for rank := 0; rank < BlockSize; rank++ {
		natural := jpegx.Natural(rank)
		views = append(views, PhaseView{
			Rank:        rank,
			Natural:     natural,
			Coefficient: s.coef[natural],
			Block:       Reconstruct(s.coef, s.tables, rank, rank+1),
			Zero:        s.coef[natural] == 0,
			Active:      rank <= s.phase,
		})
	}
	return views
}

func (s *Session) update() {
	s.coef = ForwardTransform(s.block, s.tables.Forward)
}

func clampPhase(p int) int {
	if p < 0 {
		return 0
	}
	if p > BlockSize-1 {
		return BlockSize - 1
	}
	return p
}
