package blockquant

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vearutop/blockquant/internal/jpegx"
)

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerEOI    = 0xD9
	markerSOS    = 0xDA
	markerDQT    = 0xDB
	markerRST0   = 0xD0
	markerRST7   = 0xD7
)

// TablesFromJPEG reads the luminance quantization table (DQT table 0) from a
// baseline JPEG and returns it with matching forward multipliers.
func TablesFromJPEG(data []byte) (Tables, error) {
	q, err := extractLumaQuant(data)
	if err != nil {
		return Tables{}, err
	}

	var inv InverseTable
	for rank, v := range q {
		inv[jpegx.Natural(rank)] = int32(v)
	}
	return TablesFromInverse(inv), nil
}

// extractLumaQuant returns DQT table 0 in stream (zig-zag) order.
func extractLumaQuant(data []byte) ([64]byte, error) {
	var quant [64]byte
	if len(data) < 4 || data[0] != markerPrefix || data[1] != markerSOI {
		return quant, errors.New("invalid jpeg")
	}
	found := false
	pos := 2
	for pos+3 < len(data) {
		if data[pos] != markerPrefix {
			pos++
			continue
		}
		for pos < len(data) && data[pos] == markerPrefix {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++
		if marker == markerSOS || marker == markerEOI {
			break
		}
		// Restart markers carry no length.
		if marker >= markerRST0 && marker <= markerRST7 {
			continue
		}
		if pos+1 >= len(data) {
			return quant, errors.New("truncated marker")
		}
		segLen := int(binary.BigEndian.Uint16(data[pos:]))
		if segLen < 2 || pos+segLen > len(data) {
			return quant, errors.New("invalid segment length")
		}
		if marker == markerDQT {
			ok, err := parseDQT(data[pos+2:pos+segLen], &quant)
			if err != nil {
				return quant, fmt.Errorf("dqt: %w", err)
			}
			found = found || ok
		}
		pos += segLen
	}
	if !found {
		return quant, errors.New("missing luma quantization table")
	}
	return quant, nil
}

func parseDQT(seg []byte, quant *[64]byte) (bool, error) {
	found := false
	pos := 0
	for pos < len(seg) {
		pq := seg[pos] >> 4
		tq := seg[pos] & 0x0F
		pos++
		if pq != 0 {
			return found, errors.New("unsupported 16-bit quant table")
		}
		if pos+64 > len(seg) {
			return found, errors.New("truncated table")
		}
		if tq == 0 {
			copy(quant[:], seg[pos:pos+64])
			found = true
		}
		pos += 64
	}
	return found, nil
}
