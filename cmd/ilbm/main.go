package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/saschaklick/libilbm"
	"github.com/saschaklick/libilbm/ilbm"
	"github.com/saschaklick/libilbm/preview"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

const defaultDB = "ilbm.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Value: "auto",
	Usage: "body layout, one of auto, ilbm or pbm",
}

func parseFormat(s string) (ilbm.Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ilbm.FormatAuto, nil
	case "ilbm":
		return ilbm.FormatILBM, nil
	case "pbm":
		return ilbm.FormatPBM, nil
	}
	return ilbm.FormatAuto, fmt.Errorf("unknown format %q", s)
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Int("verbosity") > 0 {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func decoderOptions(c *cli.Context) ([]ilbm.Option, error) {
	f, err := parseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	return []ilbm.Option{
		ilbm.WithFormat(f),
		ilbm.WithLogger(newLogger(c), ilbm.Level(c.Int("verbosity"))),
	}, nil
}

func openImage(c *cli.Context) (*libilbm.File, error) {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	opts, err := decoderOptions(c)
	if err != nil {
		return nil, err
	}

	return libilbm.Open(c.Args().First(), opts...)
}

func printInfo(w io.Writer, f *libilbm.File) {
	m := f.Image
	h := m.Header

	fmt.Fprintln(w, libilbm.Summary(f.Path, m))
	fmt.Fprintf(w, "digest      : %s\n", f.Digest)
	fmt.Fprintf(w, "format      : %s\n", m.Format)
	if m.BMHD != nil {
		fmt.Fprintf(w, "planes      : %d\n", h.Planes)
		fmt.Fprintf(w, "mask        : %s\n", h.Mask)
		fmt.Fprintf(w, "compression : %s\n", h.Compression)
		fmt.Fprintf(w, "transparent : %d\n", h.Transparent)
		fmt.Fprintf(w, "aspect      : %d:%d\n", h.XAspect, h.YAspect)
		fmt.Fprintf(w, "page        : %dx%d\n", h.PageWidth, h.PageHeight)
	}
	if m.CMAP != nil {
		fmt.Fprintf(w, "colors      : %d\n", m.ColorCount)
	}

	fmt.Fprintf(w, "chunks      : %d\n", len(m.Chunks))
	for i, ch := range m.Chunks {
		fmt.Fprintf(w, "  %2d %q offset: %d size: %d\n", i, ch.ID.String(), ch.Offset, ch.Size)
	}

	fmt.Fprint(w, m.Report())
}

func main() {
	app := cli.NewApp()

	app.Name = "ilbm"
	app.Usage = "IFF ILBM and PBM image utility"
	app.Version = ilbm.Version

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"ILBM_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.IntFlag{
			Name:    "verbosity",
			Aliases: []string{"v"},
			EnvVars: []string{"ILBM_VERBOSITY"},
			Usage:   "decoder log level, 0 (silent) to 4 (debug)",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Describe the structure of an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       []cli.Flag{formatFlag},
			Action: func(c *cli.Context) error {
				f, err := openImage(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				printInfo(c.App.Writer, f)

				if err := f.Err(); err != nil {
					return cli.Exit("", 1)
				}

				return nil
			},
		},
		{
			Name:        "view",
			Usage:       "Print an image as text",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				formatFlag,
				&cli.IntFlag{
					Name:  "columns",
					Value: preview.DefaultColumns,
					Usage: "maximum width in characters",
				},
				&cli.Float64Flag{
					Name:  "aspect",
					Value: preview.DefaultAspect,
					Usage: "height of a character divided by its width",
				},
				&cli.IntFlag{
					Name:  "charset",
					Usage: fmt.Sprintf("character ramp, 0 to %d", preview.Charsets()-1),
				},
			},
			Action: func(c *cli.Context) error {
				f, err := openImage(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := f.Err(); err != nil {
					return cli.Exit(err, 1)
				}

				if err := preview.Render(c.App.Writer, f.Image, preview.Options{
					Columns: c.Int("columns"),
					Aspect:  c.Float64("aspect"),
					Charset: c.Int("charset"),
				}); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to PNG, GIF or BMP",
			Description: "The output format is chosen by the extension of OUTPUT.",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				formatFlag,
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce the palette to at most this many colors",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := openImage(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := f.Err(); err != nil {
					return cli.Exit(err, 1)
				}

				file := c.Args().Get(1)
				out, err := os.Create(file)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer out.Close()

				if err := libilbm.Export(out, f.Image, libilbm.KindOf(file), c.Int("colors")); err != nil {
					os.Remove(file)
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Decode every image below a directory into the database",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				formatFlag,
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of files decoded in parallel",
				},
				&cli.StringSliceFlag{
					Name:  "pattern",
					Usage: "file name pattern, may be repeated",
				},
				&cli.BoolFlag{
					Name:  "no-progress",
					Usage: "disable the progress spinner",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts, err := decoderOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := libilbm.NewDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				i := libilbm.New(db, newLogger(c), opts...)
				i.SetWorkers(c.Int("workers"))

				var bar *progressbar.ProgressBar
				if !c.Bool("no-progress") {
					bar = progressbar.Default(-1, "Scanning")
				}

				var mu sync.Mutex
				var lines []string
				failed := 0

				err = i.Scan(context.Background(), c.Args().First(), c.StringSlice("pattern"), func(f *libilbm.File) {
					mu.Lock()
					defer mu.Unlock()
					lines = append(lines, libilbm.Summary(f.Path, f.Image))
					if f.Err() != nil {
						failed++
					}
					if bar != nil {
						bar.Add(1)
					}
				})
				if bar != nil {
					bar.Finish()
					fmt.Fprintln(os.Stderr)
				}
				if err != nil {
					return cli.Exit(err, 1)
				}

				sort.Strings(lines)
				for _, line := range lines {
					fmt.Fprintln(c.App.Writer, line)
				}

				if failed > 0 {
					return cli.Exit(fmt.Sprintf("%d of %d files failed to decode", failed, len(lines)), 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
