/*
Package ilbm implements a decoder for Amiga ILBM and Deluxe Paint PBM images.

Both are IFF FORM containers holding, among others, a 20 byte BMHD header
chunk, a CMAP chunk of RGB triples and a BODY chunk with the pixel data. ILBM
bodies store each row as a sequence of bitplanes, one bit per pixel per plane
with the most significant bit on the left. PBM bodies store one byte per
pixel. Either body may be compressed with ByteRun1 where a signed length byte
introduces a literal run or a repeated byte.

The decoder is tolerant of broken files. When a chunk is not found under its
proper name a substitute is picked by its position or size, and each such
substitution is recorded as a Warning on the decoded Image. Only when no
candidate exists at all, or the header or body is unusable, does decoding fail
with an ErrorCode. A failed Image still carries whatever was decoded up to the
failure, which is useful for diagnostics.
*/
package ilbm

// Version of the decoder, logged at LevelInfo on every Read.
const Version = "1.0.0"
