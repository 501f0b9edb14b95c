package iff_test

import (
	"testing"

	"github.com/saschaklick/libilbm/iff"
	"github.com/stretchr/testify/assert"
)

func chunk(id string, size uint32) *iff.Chunk {
	c := &iff.Chunk{Size: size}
	copy(c.ID[:], id)
	return c
}

func TestCatalog(t *testing.T) {
	a := chunk("BMHD", 20)
	b := chunk("XXXX", 20)
	c := chunk("BODY", 100)
	d := chunk("YYYY", 100)
	cat := iff.Catalog{a, b, c, d}

	assert.Same(t, a, cat.First(iff.BMHD))
	assert.Same(t, c, cat.First(iff.BODY))
	assert.Nil(t, cat.First(iff.CMAP))

	assert.Same(t, a, cat.FirstSized(20))
	assert.Nil(t, cat.FirstSized(21))

	// Ties go to the later chunk
	assert.Same(t, d, cat.Largest())

	assert.Equal(t, 2, cat.Index(c))
	assert.Equal(t, -1, cat.Index(chunk("BODY", 100)))
}

func TestCatalogEmpty(t *testing.T) {
	var cat iff.Catalog

	assert.Nil(t, cat.First(iff.BODY))
	assert.Nil(t, cat.Largest())
}
