// Package huffman implements a lossless byte-stream compressor based on plain
// (non-canonical) Huffman codes.  The code tree itself is written in front of
// the payload, so the decompressor needs nothing but the compressed stream.
//
// Compressed format, all fields MSB-first:
//
//     [preorder tree bits]   0 = internal node, 1 = leaf followed by 8 symbol bits
//     [32-bit symbol count]  number of encoded symbols
//     [codeword bits ...]    one codeword per input symbol, in input order
//     [zero padding]         0 to 7 bits, to reach a byte boundary
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
