package domain

import (
	"archive/zip"
	"bytes"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

var qrSizes = []int{256, 512, 1024}

// QRBundle renders the share URL as QR PNGs in several sizes and zips them
// into a single downloadable archive (qr-256.png, qr-512.png, qr-1024.png).
func QRBundle(shareURL string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, size := range qrSizes {
		png, err := qrcode.Encode(shareURL, qrcode.Medium, size)
		if err != nil {
			return nil, fmt.Errorf("render qr %dpx: %w", size, err)
		}

		w, err := zw.Create(fmt.Sprintf("qr-%d.png", size))
		if err != nil {
			return nil, fmt.Errorf("zip entry %dpx: %w", size, err)
		}
		if _, err := w.Write(png); err != nil {
			return nil, fmt.Errorf("zip write %dpx: %w", size, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}
