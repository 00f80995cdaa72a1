package qrcodec_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/qrcodec/qrcodec"
	"github.com/qrcodec/qrcodec/binarizer"
	multiqr "github.com/qrcodec/qrcodec/multi/qrcode"
	"github.com/qrcodec/qrcodec/qrcode/decoder"
	"github.com/qrcodec/qrcodec/qrcode/encoder"
	"github.com/qrcodec/qrcodec/raster"

	// Register the QR reader for the top-level qrcodec.Decode convenience
	// function used below.
	_ "github.com/qrcodec/qrcodec/qrcode"
)

// encodeAndDecode exercises the full image pipeline: encode to a module
// matrix, raster it to a pixel image at a real module size and quiet zone,
// convert that image back into a LuminanceSource, binarize it, and hand the
// result to the top-level Decode, which drives detector.Detect end to end
// (finder scan, corner assembly, transform solving, module sampling) rather
// than decoding straight off the encoder's BitMatrix.
func encodeAndDecode(t *testing.T, content string, ecLevel decoder.ErrorCorrectionLevel, moduleSize, quietZone int) string {
	t.Helper()

	code, err := encoder.Encode([]byte(content), ecLevel, 0, -1, 0)
	if err != nil {
		t.Fatalf("Encode(%q) failed: %v", content, err)
	}

	img, err := raster.Render(code.ToBitMatrix(), moduleSize, quietZone)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	source := qrcodec.NewGrayImageLuminanceSource(img)
	bin := binarizer.NewGlobalHistogram(source)
	bitmap := qrcodec.NewBinaryBitmap(bin)

	opts := &qrcodec.DecodeOptions{
		PossibleFormats: []qrcodec.Format{qrcodec.FormatQRCode},
	}
	result, err := qrcodec.Decode(bitmap, opts)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", content, err)
	}
	return result.Text
}

func TestRoundTripThroughImagePipeline(t *testing.T) {
	decoded := encodeAndDecode(t, "Hello, World!", decoder.ECLevelM, 4, 16)
	if decoded != "Hello, World!" {
		t.Errorf("round-trip: got %q, want %q", decoded, "Hello, World!")
	}
}

func TestRoundTripThroughImagePipelineNumeric(t *testing.T) {
	decoded := encodeAndDecode(t, "1234567890", decoder.ECLevelL, 2, 8)
	if decoded != "1234567890" {
		t.Errorf("round-trip: got %q, want %q", decoded, "1234567890")
	}
}

func TestRoundTripThroughImagePipelineHighEC(t *testing.T) {
	decoded := encodeAndDecode(t, "TEST123", decoder.ECLevelH, 3, 12)
	if decoded != "TEST123" {
		t.Errorf("round-trip: got %q, want %q", decoded, "TEST123")
	}
}

// TestRoundTripThroughJPEG covers the lossy-compression scenario: the
// rendered symbol is JPEG-encoded and decoded back before binarization,
// exercising the global histogram's tolerance for JPEG block artifacts.
func TestRoundTripThroughJPEG(t *testing.T) {
	content := "JPEG round trip"
	code, err := encoder.Encode([]byte(content), decoder.ECLevelQ, 0, -1, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	rendered, err := raster.Render(code.ToBitMatrix(), 4, 16)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rendered, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}

	decodedImg, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("jpeg.Decode failed: %v", err)
	}

	source := qrcodec.NewImageLuminanceSource(decodedImg)
	bin := binarizer.NewGlobalHistogram(source)
	bitmap := qrcodec.NewBinaryBitmap(bin)

	opts := &qrcodec.DecodeOptions{
		PossibleFormats: []qrcodec.Format{qrcodec.FormatQRCode},
	}
	result, err := qrcodec.Decode(bitmap, opts)
	if err != nil {
		t.Fatalf("Decode after JPEG round trip failed: %v", err)
	}
	if result.Text != content {
		t.Errorf("round-trip through JPEG: got %q, want %q", result.Text, content)
	}
}

// TestMultiSymbolDetection renders two distinct QR symbols side by side in
// one image, separated by a quiet gap, and checks that
// multi/qrcode.QRCodeMultiReader recovers both without reassembling them
// into a single structured-append sequence.
func TestMultiSymbolDetection(t *testing.T) {
	const gap = 60

	codeA, err := encoder.Encode([]byte("AAAA"), decoder.ECLevelM, 0, -1, 0)
	if err != nil {
		t.Fatalf("Encode(A) failed: %v", err)
	}
	codeB, err := encoder.Encode([]byte("BBBB"), decoder.ECLevelM, 0, -1, 0)
	if err != nil {
		t.Fatalf("Encode(B) failed: %v", err)
	}

	imgA, err := raster.Render(codeA.ToBitMatrix(), 4, 16)
	if err != nil {
		t.Fatalf("Render(A) failed: %v", err)
	}
	imgB, err := raster.Render(codeB.ToBitMatrix(), 4, 16)
	if err != nil {
		t.Fatalf("Render(B) failed: %v", err)
	}

	totalWidth := imgA.Bounds().Dx() + gap + imgB.Bounds().Dx()
	totalHeight := imgA.Bounds().Dy()
	if imgB.Bounds().Dy() > totalHeight {
		totalHeight = imgB.Bounds().Dy()
	}

	composite := image.NewGray(image.Rect(0, 0, totalWidth, totalHeight))
	for i := range composite.Pix {
		composite.Pix[i] = 0xFF
	}
	pasteGray(composite, imgA, 0, 0)
	pasteGray(composite, imgB, imgA.Bounds().Dx()+gap, 0)

	source := qrcodec.NewGrayImageLuminanceSource(composite)
	bin := binarizer.NewGlobalHistogram(source)
	bitmap := qrcodec.NewBinaryBitmap(bin)

	reader := multiqr.NewQRCodeMultiReader()
	results, err := reader.DecodeMultiple(bitmap, &qrcodec.DecodeOptions{})
	if err != nil {
		t.Fatalf("DecodeMultiple failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("DecodeMultiple found %d symbols, want 2", len(results))
	}

	found := map[string]bool{}
	for _, r := range results {
		found[r.Text] = true
	}
	if !found["AAAA"] || !found["BBBB"] {
		t.Errorf("DecodeMultiple results = %v, want both %q and %q", results, "AAAA", "BBBB")
	}
}

func pasteGray(dst, src *image.Gray, offsetX, offsetY int) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetGray(offsetX+x, offsetY+y, src.GrayAt(x, y))
		}
	}
}
