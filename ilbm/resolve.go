package ilbm

import "github.com/saschaklick/libilbm/iff"

// minChunks is the least a usable file needs: header, palette and body.
const minChunks = 3

// resolveHeader picks the BMHD chunk by name, then by the size of the
// record, and finally falls back to the first chunk. A chunk found by name is
// trusted whatever its size; parseHeader zero fills a short one.
func resolveHeader(cat iff.Catalog, ws *Warnings) *iff.Chunk {
	if c := cat.First(iff.BMHD); c != nil {
		return c
	}
	if c := cat.FirstSized(HeaderSize); c != nil {
		ws.set(WarnHeaderByPosition)
		return c
	}
	if len(cat) == 0 {
		return nil
	}
	ws.set(WarnHeaderByPosition)
	ws.set(WarnHeaderSizeMismatch)
	return cat[0]
}

// resolveBody picks the BODY chunk by name, or else the largest chunk as
// long as that is not the header.
func resolveBody(cat iff.Catalog, header *iff.Chunk, ws *Warnings) *iff.Chunk {
	if c := cat.First(iff.BODY); c != nil {
		return c
	}
	c := cat.Largest()
	if c == nil || c == header {
		return nil
	}
	ws.set(WarnBodyBySize)
	return c
}

// resolvePalette picks the CMAP chunk by name, then the first non-header
// chunk sized exactly for 2^planes colors, then the first non-header chunk
// large enough for the highest index seen in the decoded pixels. The last
// stage depends on the pixels so this must run after the body is decoded.
func resolvePalette(cat iff.Catalog, header *iff.Chunk, planes uint8, maxIndex uint8, ws *Warnings) *iff.Chunk {
	if c := cat.First(iff.CMAP); c != nil {
		return c
	}

	// 3 << planes stops fitting a chunk size long before 32 planes
	if planes < 32 {
		exact := uint64(3) << planes
		if c := cat.FirstMatching(func(c *iff.Chunk) bool {
			return c != header && uint64(c.Size) == exact
		}); c != nil {
			ws.set(WarnPaletteByExactSize)
			return c
		}
	}

	min := uint32(maxIndex) * 3
	if c := cat.FirstMatching(func(c *iff.Chunk) bool {
		return c != header && c.Size >= min
	}); c != nil {
		ws.set(WarnPaletteByMinSize)
		return c
	}

	return nil
}
