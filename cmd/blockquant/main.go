package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vearutop/blockquant"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "tables":
		err = runTables(os.Args[2:], os.Stdout)
	case "encode":
		err = runEncode(os.Args[2:], os.Stdout)
	case "decode":
		err = runDecode(os.Args[2:], os.Stdout)
	case "phases":
		err = runPhases(os.Args[2:])
	case "sweep":
		err = runSweep(os.Args[2:], os.Stdout)
	case "jpegtables":
		err = runJPEGTables(os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: blockquant <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  tables     -q 50 [-json]")
	fmt.Fprintln(os.Stderr, "  encode     -in image [-x 0 -y 0 | -fit] [-q 50] [-channel luma] [-json]")
	fmt.Fprintln(os.Stderr, "  decode     -in image [-x 0 -y 0 | -fit] [-q 50] [-start 0 -end 64] [-json]")
	fmt.Fprintln(os.Stderr, "  phases     -in image -out sheet.png [-x 0 -y 0 | -fit] [-q 50] [-phase 63] [-scale 32]")
	fmt.Fprintln(os.Stderr, "  sweep      -in image [-x 0 -y 0 | -fit] [-qs 10,50,90]")
	fmt.Fprintln(os.Stderr, "  jpegtables -in file.jpg [-json]")
}

// blockFlags are shared by the subcommands that read a block from an image.
type blockFlags struct {
	in      *string
	x, y    *int
	fit     *bool
	channel *string
	interp  *string
}

func addBlockFlags(fs *flag.FlagSet) blockFlags {
	return blockFlags{
		in:      fs.String("in", "", "input image (jpeg, png, gif, webp, bmp, tiff)"),
		x:       fs.Int("x", 0, "block left edge"),
		y:       fs.Int("y", 0, "block top edge"),
		fit:     fs.Bool("fit", false, "downsample the whole image to 8x8 instead of cropping"),
		channel: fs.String("channel", "luma", "luma, red, green or blue"),
		interp:  fs.String("interp", "lanczos2", "downsampling for -fit: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3"),
	}
}

func (bf blockFlags) load() (blockquant.PixelBlock, error) {
	var b blockquant.PixelBlock
	if *bf.in == "" {
		return b, errors.New("missing required arguments")
	}
	ch, err := blockquant.ParseChannel(*bf.channel)
	if err != nil {
		return b, err
	}
	data, err := os.ReadFile(filepath.Clean(*bf.in))
	if err != nil {
		return b, err
	}
	img, err := blockquant.DecodeImage(data)
	if err != nil {
		return b, err
	}
	if *bf.fit {
		interp, ok := blockquant.ParseInterpolation(*bf.interp)
		if !ok {
			return b, fmt.Errorf("unknown interpolation %q", *bf.interp)
		}
		return blockquant.ResizeToBlock(img, interp, ch), nil
	}
	return blockquant.BlockFromImage(img, *bf.x, *bf.y, ch), nil
}

func runTables(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	q := fs.Int("q", 50, "quality (1-100)")
	asJSON := fs.Bool("json", false, "print forward and inverse tables as JSON")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	t := blockquant.BuildQuantizationTables(*q)
	if *asJSON {
		return writeJSON(w, t)
	}
	return writeGrid(w, t.Inverse[:])
}

func runEncode(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	bf := addBlockFlags(fs)
	q := fs.Int("q", 50, "quality (1-100)")
	asJSON := fs.Bool("json", false, "print JSON")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	b, err := bf.load()
	if err != nil {
		return err
	}
	s := blockquant.NewSession(b, func(o *blockquant.SessionOptions) {
		o.Quality = *q
	})
	if *asJSON {
		return writeJSON(w, struct {
			Quality      int                         `json:"quality"`
			Block        blockquant.PixelBlock       `json:"block"`
			Coefficients blockquant.CoefficientBlock `json:"coefficients"`
		}{
			Quality:      s.Quality(),
			Block:        s.Block(),
			Coefficients: s.Coefficients(),
		})
	}
	c := s.Coefficients()
	return writeGrid(w, c[:])
}

func runDecode(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	bf := addBlockFlags(fs)
	q := fs.Int("q", 50, "quality (1-100)")
	start := fs.Int("start", 0, "first zig-zag rank kept")
	end := fs.Int("end", blockquant.BlockSize, "zig-zag rank after the last one kept")
	asJSON := fs.Bool("json", false, "print JSON")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	b, err := bf.load()
	if err != nil {
		return err
	}
	t := blockquant.CachedQuantizationTables(*q)
	c := blockquant.ForwardTransform(b, t.Forward)
	rec := blockquant.Reconstruct(c, t, *start, *end)
	if *asJSON {
		return writeJSON(w, struct {
			Quality int                   `json:"quality"`
			PSNR    *float64              `json:"psnr,omitempty"` // Absent for a lossless reconstruction.
			Block   blockquant.PixelBlock `json:"block"`
		}{
			Quality: t.Quality,
			PSNR:    finite(blockquant.PSNR(b, rec)),
			Block:   rec,
		})
	}
	return writeGrid(w, rec[:])
}

func runPhases(args []string) error {
	fs := flag.NewFlagSet("phases", flag.ContinueOnError)
	bf := addBlockFlags(fs)
	outPath := fs.String("out", "", "output PNG")
	q := fs.Int("q", 50, "quality (1-100)")
	phase := fs.Int("phase", 63, "highest zig-zag rank kept (0-63)")
	scale := fs.Int("scale", 32, "upscale factor of the source and reconstruction")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("missing required arguments")
	}
	b, err := bf.load()
	if err != nil {
		return err
	}
	s := blockquant.NewSession(b, func(o *blockquant.SessionOptions) {
		o.Quality = *q
		o.Phase = *phase
	})
	sheet := blockquant.ContactSheet(s, *scale, blockquant.InterpolationNearest)

	f, err := os.Create(filepath.Clean(*outPath))
	if err != nil {
		return err
	}
	if err := png.Encode(f, sheet); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

func runSweep(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	bf := addBlockFlags(fs)
	qs := fs.String("qs", "10,25,50,75,90,100", "comma separated qualities")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	qualities, err := parseInts(*qs)
	if err != nil {
		return err
	}
	b, err := bf.load()
	if err != nil {
		return err
	}
	s := blockquant.NewSession(b)
	fmt.Fprintln(w, "quality\tnonzero\tpsnr")
	for _, q := range qualities {
		s.SetQuality(q)
		fmt.Fprintf(w, "%d\t%d\t%.2f\n", s.Quality(), s.NonZero(), blockquant.PSNR(b, s.Reconstruction()))
	}
	return nil
}

func runJPEGTables(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("jpegtables", flag.ContinueOnError)
	inPath := fs.String("in", "", "input JPEG")
	asJSON := fs.Bool("json", false, "print forward and inverse tables as JSON")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	data, err := os.ReadFile(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	t, err := blockquant.TablesFromJPEG(data)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(w, t)
	}
	return writeGrid(w, t.Inverse[:])
}

type integer interface {
	~int | ~int32 | ~uint8
}

func writeGrid[T integer](w io.Writer, v []T) error {
	for row := 0; row < 8; row++ {
		cells := make([]string, 8)
		for col := range cells {
			cells[col] = fmt.Sprintf("%5d", v[row*8+col])
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("no values")
	}
	return out, nil
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
