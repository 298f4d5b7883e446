package split

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 300 // pixels, scans fine from a phone screen

// renderQR encodes a UPI link as a PNG data URI so the frontend can
// drop it straight into an img tag.
func renderQR(link string) (string, error) {
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	png, err := qr.PNG(qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR to PNG: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
