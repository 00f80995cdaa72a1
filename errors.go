package qrcodec

import "errors"

var (
	// ErrNotFound is returned when a barcode is not found in the image.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when a barcode's checksum does not match.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a barcode cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a barcode cannot be encoded.
	ErrWriter = errors.New("writer error")

	// ErrInputTooLarge is returned when a payload does not fit any QR
	// version at the requested error correction level.
	ErrInputTooLarge = errors.New("input too large for any QR version")

	// ErrInvalidMatrixShape is returned by the image adapter when the module
	// matrix is nil, empty or not square, or when the module size or quiet
	// zone is out of range.
	ErrInvalidMatrixShape = errors.New("invalid module matrix shape")
)
