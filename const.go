package blockquant

import "github.com/vearutop/blockquant/internal/jpegx"

// BlockSize is the number of samples in an 8x8 block.
const BlockSize = jpegx.BlockSize

const (
	defaultQuality = 100
	defaultPhase   = BlockSize - 1
)

const (
	levelShift = 128
	maxRank    = BlockSize
)
