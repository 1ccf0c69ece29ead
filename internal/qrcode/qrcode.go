// Package qrcode renders join links as PNG images.
package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// JoinURL returns the link a player scans to join game code.
func JoinURL(publicURL, code string) string {
	return strings.TrimRight(publicURL, "/") + "/join/" + url.PathEscape(code)
}

// Generate creates a QR code PNG for content. Sizes outside 64..1024 fall
// back to DefaultSize.
func Generate(content string, size int) ([]byte, error) {
	if size < 64 || size > 1024 {
		size = DefaultSize
	}
	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
