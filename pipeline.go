package libilbm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultWorkers = 10

// Ignore any file greater than 16 MB
const maxFileSize = 16 << (10 * 2)

// DefaultPatterns match the usual extensions for ILBM and PBM images.
var DefaultPatterns = []string{"*.iff", "*.ilbm", "*.lbm", "*.pbm", "*.bbm"}

var compressedSuffixes = []string{"", ".gz", ".zst"}

func matchName(patterns []string, name string) (bool, error) {
	name = strings.ToLower(name)
	for _, pattern := range patterns {
		pattern = strings.ToLower(pattern)
		for _, suffix := range compressedSuffixes {
			ok, err := filepath.Match(pattern+suffix, name)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

func (i *Inspector) findFiles(ctx context.Context, base string, patterns []string) (<-chan string, <-chan error, error) {
	// Catch bad patterns before starting the walk
	if _, err := matchName(patterns, ""); err != nil {
		return nil, nil, err
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if info.Size() > maxFileSize {
				i.logger.Printf("Skipping \"%s\", %d bytes\n", file, info.Size())
				return nil
			}

			ok, _ := matchName(patterns, info.Name())
			if !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (i *Inspector) fileWorker(ctx context.Context, in <-chan string, progress func(*File)) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			f, err := Open(file, i.opts...)
			if err != nil {
				i.logger.Printf("Unreadable \"%s\": %v\n", file, err)
				f = &File{Path: file, err: err}
			} else if err := f.Err(); err != nil {
				i.logger.Printf("Failed \"%s\": %v\n", file, err)
			}

			if err := i.db.Record(f); err != nil {
				errc <- err
				return
			}

			if progress != nil {
				progress(f)
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan decodes every file below path whose name matches one of patterns,
// or DefaultPatterns when none are given, optionally followed by ".gz" or
// ".zst". Each result is recorded and passed to progress, which may be
// called from several goroutines at once. A file that cannot be read is
// recorded with a nil Image and its error. Scan stops at the first error
// walking the tree or writing the DB.
func (i *Inspector) Scan(ctx context.Context, path string, patterns []string, progress func(*File)) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := i.findFiles(ctx, dir, patterns)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for n := 0; n < i.workers; n++ {
		errc, err := i.fileWorker(ctx, files, progress)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
