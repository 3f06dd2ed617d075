// Package compress implements the adaptive Huffman + LZ block codec used by
// embroidery formats that store their stitch data compressed.
//
// A compressed stream is a sequence of blocks. Each block header carries
// the number of symbols it covers and three Huffman code length tables:
// the code-length alphabet, the literal/length alphabet (0-255 literal
// bytes, 256-509 match lengths, 510 end of stream) and the distance
// alphabet. Symbols are decoded from a 16-bit MSB-first lookahead window.
//
// Expand decodes a stream. Compress produces the loopback form: a fixed
// 6-byte header followed by the raw payload, which Expand also accepts.
//
//	raw, err := compress.Expand(data, size)
//
// Truncated input ends decoding cleanly with the bytes produced so far.
// Structurally invalid input (a table without codes, a reference before the
// start of the output) returns the partial output together with an error.
package compress
