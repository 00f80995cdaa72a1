// Package qrcode adapts the generic multi-barcode scanner to QR codes.
package qrcode

import (
	"github.com/qrcodec/qrcodec"
	"github.com/qrcodec/qrcodec/multi"
	qr "github.com/qrcodec/qrcodec/qrcode"
)

// QRCodeMultiReader locates and decodes every QR symbol present in an
// image, recursively re-scanning the regions left over once a symbol is
// found. It never reassembles structured-append sequences: each symbol in
// the sequence comes back as its own Result, with its sequence number and
// parity exposed as metadata, exactly as detected.
type QRCodeMultiReader struct {
	generic *multi.GenericMultipleBarcodeReader
}

// NewQRCodeMultiReader creates a new QRCodeMultiReader.
func NewQRCodeMultiReader() *QRCodeMultiReader {
	return &QRCodeMultiReader{generic: multi.NewGenericMultipleBarcodeReader(qr.NewReader())}
}

// DecodeMultiple detects and decodes all QR codes in the image.
func (r *QRCodeMultiReader) DecodeMultiple(image *qrcodec.BinaryBitmap, opts *qrcodec.DecodeOptions) ([]*qrcodec.Result, error) {
	return r.generic.DecodeMultiple(image, opts)
}

// Decode decodes a single QR code, returning the first symbol found.
func (r *QRCodeMultiReader) Decode(image *qrcodec.BinaryBitmap, opts *qrcodec.DecodeOptions) (*qrcodec.Result, error) {
	results, err := r.DecodeMultiple(image, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Reset is a no-op; QRCodeMultiReader holds no decode state between calls.
func (r *QRCodeMultiReader) Reset() {}

// ensure interface compliance
var _ qrcodec.MultipleBarcodeReader = (*QRCodeMultiReader)(nil)
var _ qrcodec.Reader = (*QRCodeMultiReader)(nil)
