package decoder

import "errors"

var (
	errInvalidECLevel = errors.New("qrcode/decoder: invalid error correction level")
	errInvalidMode    = errors.New("qrcode/decoder: invalid mode")
	errInvalidVersion = errors.New("qrcode/decoder: invalid version number")

	// ErrUnsupportedMode is returned for mode indicators this decoder
	// recognizes structurally but does not interpret: Kanji and the
	// reserved Hanzi (GB2312) mode.
	ErrUnsupportedMode = errors.New("qrcode/decoder: unsupported mode")
)
