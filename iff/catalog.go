package iff

// Catalog is the ordered list of chunks read from one stream.
type Catalog []*Chunk

// First returns the first chunk named id.
func (cat Catalog) First(id ID) *Chunk {
	return cat.FirstMatching(func(c *Chunk) bool {
		return c.ID == id
	})
}

// FirstSized returns the first chunk with the given declared size.
func (cat Catalog) FirstSized(size uint32) *Chunk {
	return cat.FirstMatching(func(c *Chunk) bool {
		return c.Size == size
	})
}

// FirstMatching returns the first chunk for which match returns true.
func (cat Catalog) FirstMatching(match func(*Chunk) bool) *Chunk {
	for _, c := range cat {
		if match(c) {
			return c
		}
	}
	return nil
}

// Largest returns the chunk with the largest declared size. When several
// chunks share that size the last of them wins.
func (cat Catalog) Largest() *Chunk {
	var largest *Chunk
	for _, c := range cat {
		if largest == nil || c.Size >= largest.Size {
			largest = c
		}
	}
	return largest
}

// Index returns the position of c in the catalog or -1.
func (cat Catalog) Index(c *Chunk) int {
	for i := range cat {
		if cat[i] == c {
			return i
		}
	}
	return -1
}
