package services

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// RenderBarcode renders a SKU as a Code 128 PNG. Decoding stays on the
// client; the server only produces printable labels.
func RenderBarcode(text string, width, height int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("barcode text is required")
	}

	code, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode barcode: %w", err)
	}

	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to render barcode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
