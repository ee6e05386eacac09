// Package blockquant provides an 8x8 block transform-and-quantization codec for
// visualizing how JPEG-style quantization degrades an image block.
//
// A pixel block is level-shifted and transformed with the AAN forward DCT, then
// quantized with a luminance table scaled by quality. Coefficients can be masked
// by zig-zag rank ("phase") and reconstructed with an integer Loeffler IDCT, so
// the contribution of each frequency can be inspected on its own.
package blockquant
