package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/qrcodec/qrcodec"
	"github.com/qrcodec/qrcodec/binarizer"
	multiqr "github.com/qrcodec/qrcodec/multi/qrcode"

	// Register the QR reader.
	_ "github.com/qrcodec/qrcodec/qrcode"
)

func main() {
	tryHarder := flag.Bool("try-harder", false, "accepted for compatibility; has no effect on QR decoding")
	pure := flag.Bool("pure", false, "hint that the image is a clean barcode render with minimal border")
	multiFlag := flag.Bool("multi", false, "locate and decode every QR symbol in the image, not just the first")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: barcodescan [flags] <image-file> [image-file...]\n\n")
		fmt.Fprintf(os.Stderr, "Detect and decode barcodes in image files (PNG, JPEG, GIF).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		results, err := scanFile(path, *tryHarder, *pure, *multiFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
			exitCode = 1
			continue
		}
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "%s: no barcodes found\n", path)
			exitCode = 1
			continue
		}
		for _, r := range results {
			if flag.NArg() > 1 {
				fmt.Printf("%s: ", path)
			}
			fmt.Printf("[%s] %s\n", r.Format, r.Text)
		}
	}
	os.Exit(exitCode)
}

// allFormats lists every format to attempt. QR Code is the only symbology
// this codec reads, but the loop below is kept general so a second format
// package can be registered without touching scanFile.
var allFormats = []qrcodec.Format{
	qrcodec.FormatQRCode,
}

func scanFile(path string, tryHarder, pure, multi bool) ([]*qrcodec.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	source := qrcodec.NewImageLuminanceSource(img)
	opts := &qrcodec.DecodeOptions{
		TryHarder:   tryHarder,
		PureBarcode: pure,
	}

	// Try GlobalHistogram binarizer first (fast, works well for clean images),
	// then fall back to Hybrid binarizer (local adaptive thresholding, better
	// for photographs with uneven lighting). This mirrors the Java ZXing
	// MultiFormatReader retry strategy.
	bitmaps := []*qrcodec.BinaryBitmap{
		qrcodec.NewBinaryBitmap(binarizer.NewGlobalHistogram(source)),
		qrcodec.NewBinaryBitmap(binarizer.NewHybrid(source)),
	}

	if multi {
		return scanMultiple(bitmaps, opts)
	}

	var results []*qrcodec.Result
	seen := map[string]bool{}

	for _, bitmap := range bitmaps {
		for _, format := range allFormats {
			formatOpts := *opts
			formatOpts.PossibleFormats = []qrcodec.Format{format}

			result, err := tryDecode(bitmap, &formatOpts)
			if err != nil {
				continue
			}
			key := fmt.Sprintf("%s:%s", result.Format, result.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, result)
		}
	}

	return results, nil
}

// scanMultiple locates and decodes every QR symbol present, rather than
// stopping at the first. It recursively re-scans the regions surrounding
// each symbol found, via multi/qrcode.QRCodeMultiReader.
func scanMultiple(bitmaps []*qrcodec.BinaryBitmap, opts *qrcodec.DecodeOptions) ([]*qrcodec.Result, error) {
	reader := multiqr.NewQRCodeMultiReader()
	seen := map[string]bool{}
	var results []*qrcodec.Result

	for _, bitmap := range bitmaps {
		found, err := tryDecodeMultiple(reader, bitmap, opts)
		if err != nil {
			continue
		}
		for _, result := range found {
			key := fmt.Sprintf("%s:%s", result.Format, result.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, result)
		}
	}

	return results, nil
}

// tryDecode calls qrcodec.Decode but recovers from panics that decoders may
// raise on malformed input, converting them to errors.
func tryDecode(bitmap *qrcodec.BinaryBitmap, opts *qrcodec.DecodeOptions) (result *qrcodec.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return qrcodec.Decode(bitmap, opts)
}

// tryDecodeMultiple calls reader.DecodeMultiple but recovers from panics that
// decoders may raise on malformed input, converting them to errors.
func tryDecodeMultiple(reader *multiqr.QRCodeMultiReader, bitmap *qrcodec.BinaryBitmap, opts *qrcodec.DecodeOptions) (results []*qrcodec.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return reader.DecodeMultiple(bitmap, opts)
}
