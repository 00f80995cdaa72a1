// Command qrcodec renders a QR code from text or a file into a PNG image.
package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/qrcodec/qrcodec/qrcode/decoder"
	"github.com/qrcodec/qrcodec/qrcode/encoder"
	"github.com/qrcodec/qrcodec/raster"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] input output\n\n", getopt.CommandLine.Program())
	fmt.Fprintf(os.Stderr, "input is a path to a file of bytes to encode, or literal text with -t.\n"+
		"output is the PNG file to write, or \"-\" for standard output.\n\n")
	getopt.CommandLine.PrintOptions(os.Stderr)
	os.Exit(1)
}

func main() {
	errorLevel := getopt.EnumLong("error", 'e', []string{"l", "m", "q", "h"}, "m",
		"error correction level", "l|m|q|h")
	module := getopt.IntLong("module", 'm', 2, "pixels per module", "N")
	quiet := getopt.IntLong("quiet", 'q', 8, "quiet zone pixels", "N")
	eci := getopt.IntLong("value", 'v', -1, "ECI assignment value", "N")
	asText := getopt.BoolLong("text", 't', "treat input as literal text, not a file path")
	getopt.SetUsage(usage)
	getopt.Parse()

	args := getopt.Args()
	if len(args) != 2 {
		usage()
	}
	input, output := args[0], args[1]

	var payload []byte
	if *asText {
		payload = []byte(input)
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		payload = data
	}

	ecLevel, err := ecLevelForFlag(strings.ToUpper(*errorLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	eciAssignment := 0
	if *eci >= 0 {
		eciAssignment = *eci
	}

	code, err := encoder.Encode(payload, ecLevel, 0, -1, eciAssignment)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	img, err := raster.Render(code.ToBitMatrix(), *module, *quiet)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	} else if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "refusing to write PNG data to a terminal; redirect stdout")
		os.Exit(1)
	}

	if err := png.Encode(out, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func ecLevelForFlag(level string) (decoder.ErrorCorrectionLevel, error) {
	switch level {
	case "L":
		return decoder.ECLevelL, nil
	case "M":
		return decoder.ECLevelM, nil
	case "Q":
		return decoder.ECLevelQ, nil
	case "H":
		return decoder.ECLevelH, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", level)
}
