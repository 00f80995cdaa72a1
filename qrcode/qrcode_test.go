package qrcode

import (
	"testing"

	"github.com/qrcodec/qrcodec"
	"github.com/qrcodec/qrcodec/qrcode/decoder"
	"github.com/qrcodec/qrcodec/qrcode/encoder"
)

func TestRoundTripNumeric(t *testing.T) {
	testRoundTrip(t, "1234567890", decoder.ECLevelM)
}

func TestRoundTripAlphanumeric(t *testing.T) {
	testRoundTrip(t, "HELLO WORLD", decoder.ECLevelL)
}

func TestRoundTripByte(t *testing.T) {
	testRoundTrip(t, "Hello, World! This is a test.", decoder.ECLevelQ)
}

func TestRoundTripHighEC(t *testing.T) {
	testRoundTrip(t, "TEST123", decoder.ECLevelH)
}

func TestRoundTripMixedSegments(t *testing.T) {
	// Numeric run, then alphanumeric run, then byte run, back to back.
	testRoundTrip(t, "12345HELLO WORLDhello!", decoder.ECLevelM)
}

func TestRoundTripAllECLevels(t *testing.T) {
	content := "Testing all EC levels"
	levels := []decoder.ErrorCorrectionLevel{
		decoder.ECLevelL, decoder.ECLevelM, decoder.ECLevelQ, decoder.ECLevelH,
	}
	for _, ecLevel := range levels {
		t.Run(ecLevel.String(), func(t *testing.T) {
			testRoundTrip(t, content, ecLevel)
		})
	}
}

func TestRoundTripECIAssignment(t *testing.T) {
	payload := []byte{0xC3, 0x9C} // "Ü" in UTF-8
	code, err := encoder.Encode(payload, decoder.ECLevelM, 0, -1, 26)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	dec := decoder.NewDecoder()
	result, err := dec.Decode(code.ToBitMatrix())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.ECIAssignment != 26 {
		t.Errorf("ECIAssignment = %d, want 26", result.ECIAssignment)
	}
	if result.Text != string(payload) {
		t.Errorf("Text = %v, want %v", []byte(result.Text), payload)
	}
}

func TestWriterEncode(t *testing.T) {
	w := NewWriter()
	result, err := w.Encode("Hello", qrcodec.FormatQRCode, 100, 100, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if result.Width() == 0 || result.Height() == 0 {
		t.Fatalf("empty result matrix")
	}
	if result.Width() < 100 || result.Height() < 100 {
		t.Fatalf("result too small: %dx%d", result.Width(), result.Height())
	}
}

func TestWriterEncodeWithOptions(t *testing.T) {
	w := NewWriter()
	margin := 2
	opts := &qrcodec.EncodeOptions{
		ErrorCorrection: "H",
		Margin:          &margin,
	}
	result, err := w.Encode("Test", qrcodec.FormatQRCode, 200, 200, opts)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if result.Width() < 200 || result.Height() < 200 {
		t.Fatalf("result too small: %dx%d", result.Width(), result.Height())
	}
}

func TestWriterWrongFormat(t *testing.T) {
	w := NewWriter()
	_, err := w.Encode("Hello", qrcodec.Format(999), 100, 100, nil)
	if err == nil {
		t.Fatal("expected error for wrong format")
	}
}

func TestWriterEmptyContents(t *testing.T) {
	w := NewWriter()
	_, err := w.Encode("", qrcodec.FormatQRCode, 100, 100, nil)
	if err == nil {
		t.Fatal("expected error for empty contents")
	}
}

func testRoundTrip(t *testing.T, content string, ecLevel decoder.ErrorCorrectionLevel) {
	t.Helper()

	code, err := encoder.Encode([]byte(content), ecLevel, 0, -1, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if code.Matrix == nil {
		t.Fatal("encoded matrix is nil")
	}

	bits := code.ToBitMatrix()

	dec := decoder.NewDecoder()
	result, err := dec.Decode(bits)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Text != content {
		t.Errorf("round-trip mismatch: got %q, want %q", result.Text, content)
	}
}
