package libilbm

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/opencontainers/go-digest"
	"github.com/saschaklick/libilbm/ilbm"
)

// DB stores the outcome of decoding each file.
type DB struct {
	db *sql.DB
}

// Result is one recorded file.
type Result struct {
	Path     string
	Digest   digest.Digest
	Width    int
	Height   int
	Tag      string
	Format   string
	Code     ilbm.ErrorCode
	Warnings ilbm.Warnings
	Colors   int
	// Error is set when the file could not be read at all
	Error string
}

// OK reports whether the file decoded.
func (r Result) OK() bool {
	return r.Error == "" && r.Code == ilbm.OK
}

func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared between workers
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS scan (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, digest TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, tag TEXT NOT NULL, format TEXT NOT NULL, code INTEGER NOT NULL, warnings INTEGER NOT NULL, colors INTEGER NOT NULL, error TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS scan_digest ON scan (digest)"); err != nil {
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

// Record stores f, replacing any earlier result for the same path.
func (db *DB) Record(f *File) error {
	var r Result
	if m := f.Image; m != nil {
		r = Result{
			Width:    m.Width,
			Height:   m.Height,
			Tag:      m.Tag(),
			Format:   m.Format.String(),
			Code:     m.Code,
			Warnings: m.Warnings,
			Colors:   m.ColorCount,
		}
	}
	if f.err != nil {
		r.Error = f.err.Error()
	}
	if _, err := db.db.Exec("INSERT OR REPLACE INTO scan ("+resultColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", f.Path, f.Digest.String(), r.Width, r.Height, r.Tag, r.Format, int(r.Code), uint(r.Warnings), r.Colors, r.Error); err != nil {
		return err
	}
	return nil
}

const resultColumns = "path, digest, width, height, tag, format, code, warnings, colors, error"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(s scanner) (*Result, error) {
	var r Result
	var d string
	var warnings uint
	if err := s.Scan(&r.Path, &d, &r.Width, &r.Height, &r.Tag, &r.Format, &r.Code, &warnings, &r.Colors, &r.Error); err != nil {
		return nil, err
	}
	r.Digest = digest.Digest(d)
	r.Warnings = ilbm.Warnings(warnings)
	return &r, nil
}

func (db *DB) query(where string, args ...interface{}) ([]Result, error) {
	rows, err := db.db.Query("SELECT "+resultColumns+" FROM scan "+where+" ORDER BY path", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

// Find returns the result recorded for path, or nil.
func (db *DB) Find(path string) (*Result, error) {
	r, err := scanResult(db.db.QueryRow("SELECT "+resultColumns+" FROM scan WHERE path = ?", path))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return r, nil
	default:
		return nil, err
	}
}

// FindByDigest returns every file with identical content to d.
func (db *DB) FindByDigest(d digest.Digest) ([]Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return db.query("WHERE digest = ?", d.String())
}

// Results returns everything recorded, ordered by path.
func (db *DB) Results() ([]Result, error) {
	return db.query("")
}

// Failures returns the results of files that could not be read or did not
// decode.
func (db *DB) Failures() ([]Result, error) {
	return db.query("WHERE code != ? OR error != ''", int(ilbm.OK))
}
