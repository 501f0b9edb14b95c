/*
Package libilbm is a library for inspecting collections of IFF ILBM and PBM
images.

Individual files are decoded with Open, which also undoes any gzip or zstd
compression, and summarised with Summary. An Inspector walks a directory
tree decoding every matching file and records the outcome in a DB so damaged
or unusual files can be found later by path or content digest.
*/
package libilbm

import (
	"io/ioutil"
	"log"

	"github.com/saschaklick/libilbm/ilbm"
)

// Inspector scans directories of images into a DB.
type Inspector struct {
	db      *DB
	logger  *log.Logger
	workers int
	opts    []ilbm.Option
}

// New returns an Inspector recording into db. Decoder options, such as
// ilbm.WithLogger, are applied to every file it opens.
func New(db *DB, logger *log.Logger, opts ...ilbm.Option) *Inspector {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Inspector{
		db:      db,
		logger:  logger,
		workers: defaultWorkers,
		opts:    opts,
	}
}

// SetWorkers changes the number of files decoded in parallel.
func (i *Inspector) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	i.workers = n
}
