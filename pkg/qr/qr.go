package qr

import (
	"context"
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultWidth is the pixel size used when no width is configured. It matches
// the 140px QR box on the printed invoice.
const DefaultWidth = 140

// Options control the rendered QR image.
type Options struct {
	// Width is the image width/height in pixels. Defaults to DefaultWidth.
	Width int
	// Margin controls the quiet zone around the code. Values <= 0 drop the
	// border entirely; positive values keep the standard quiet zone.
	Margin int
}

// EncodeDataURI renders the payload as a PNG QR code and returns it as a
// base64 data URI suitable for embedding in an <img> tag or a PDF.
//
// The context is checked before and after the (CPU-bound) encode so a
// cancelled request never hands a stale image to its caller.
func EncodeDataURI(ctx context.Context, payload string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("qr: failed to encode payload: %w", err)
	}
	code.DisableBorder = opts.Margin <= 0

	png, err := code.PNG(width)
	if err != nil {
		return "", fmt.Errorf("qr: failed to render PNG: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
