// Package qrlink builds shareable request links and renders them as QR
// code data URIs. Rendering is a pure function of the link text; callers
// invoke it after the request is durably created, and a rendering failure
// is reported separately from persistence errors.
package qrlink

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// BuildURL returns the shareable link for a request:
// <origin>/#requestee/<id>.
func BuildURL(origin, requestID string) string {
	return strings.TrimSuffix(origin, "/") + "/#requestee/" + requestID
}

// DataURI renders url as a QR code PNG and returns it as a
// data:image/png;base64 URI suitable for an <img> src.
func DataURI(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
