package qrcode

import "github.com/qrcodec/qrcodec"

func init() {
	qrcodec.RegisterReader(qrcodec.FormatQRCode, func(opts *qrcodec.DecodeOptions) qrcodec.Reader {
		return NewReader()
	})
	qrcodec.RegisterWriter(qrcodec.FormatQRCode, func() qrcodec.Writer {
		return NewWriter()
	})
}
