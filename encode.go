package qrcodec

import "github.com/qrcodec/qrcodec/bitutil"

// EncodeOptions configures barcode encoding behavior.
type EncodeOptions struct {
	// ErrorCorrection specifies the error correction level: "L", "M", "Q", or "H".
	ErrorCorrection string

	// ECIAssignment, when positive, forces an ECI segment naming this
	// assignment value ahead of the payload segments.
	ECIAssignment int

	// Margin specifies the margin (quiet zone) in modules around the barcode.
	Margin *int

	// QRVersion forces a specific QR version (1-40). Zero selects the
	// smallest version that fits the payload.
	QRVersion int

	// QRMaskPattern forces a specific QR mask pattern (0-7). Negative
	// selects the pattern with the lowest ISO 18004 penalty score.
	QRMaskPattern int
}

// Writer encodes data into a barcode.
type Writer interface {
	// Encode encodes the given contents into a barcode.
	Encode(contents string, format Format, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error)
}
