// Command qrscan reads a PNG or JPEG image and locates QR Codes in it.
//
// Usage:
//
//	qrscan scan <input>             decode every symbol found (use "-" for stdin)
//	qrscan info <input>             report image dimensions without decoding
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/barcodelab/qrdecode"
	"github.com/barcodelab/qrdecode/internal/pool"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = runScan(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "qrscan: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "qrscan: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  qrscan scan <input>             Decode every QR Code in an image
  qrscan info <input>             Report image dimensions

Use "-" as input to read from stdin.
`)
}

// openInput returns an io.ReadCloser for the given path. If path is "-",
// stdin is returned wrapped so that closing it leaves stdin open.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func decodeImage(path string) (image.Image, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}
	return img, nil
}

// toQRImage flattens a decoded stdlib image into the tightly packed
// RGBA buffer qrdecode.Image expects. The buffer comes from the
// engine's byte pool since it lives only for the duration of one scan
// command; callers must pool.Put(qi.Data) once Decode returns.
func toQRImage(img image.Image) qrdecode.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := pool.Get(w * h * 4)
	stride := w * 4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			off := y*stride + x*4
			buf[off] = byte(r >> 8)
			buf[off+1] = byte(g >> 8)
			buf[off+2] = byte(bl >> 8)
			buf[off+3] = byte(a >> 8)
		}
	}
	return qrdecode.Image{
		Data:      buf,
		Width:     w,
		Height:    h,
		RowStride: stride,
		PixStride: 4,
		Format:    qrdecode.PixelRGBA,
	}
}

func runScan(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("scan: missing input file\nUsage: qrscan scan <input>")
	}
	inputPath := args[len(args)-1]

	img, err := decodeImage(inputPath)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	qi := toQRImage(img)
	results, err := qrdecode.Decode(qi, qrdecode.DefaultOptions())
	pool.Put(qi.Data)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("no symbols found")
		return nil
	}

	for i, r := range results {
		if r.Err != nil {
			fmt.Printf("symbol %d: error: %v\n", i, r.Err)
			continue
		}
		fmt.Printf("symbol %d: %s [%s, ec=%s, orientation=%d]\n", i, r.Text, r.Format, r.ECLevel, r.Orientation)
	}
	return nil
}

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: qrscan info <input>")
	}
	inputPath := args[0]

	img, err := decodeImage(inputPath)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	b := img.Bounds()
	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}
	fmt.Printf("File:       %s\n", name)
	fmt.Printf("Dimensions: %d x %d\n", b.Dx(), b.Dy())
	return nil
}
