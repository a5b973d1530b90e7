package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Document MIME types.
const (
	MIMETypePDF = "application/pdf"
	MIMETypePNG = "image/png"
)

// Document is a rendered, self-contained report.
type Document struct {
	// Title is a human-readable name for the document.
	Title string

	// MIMEType is the declared content type.
	MIMEType string

	// Data is the encoded document.
	Data []byte

	// Pages is the number of pages (1 for images).
	Pages int
}

// DataURI returns the document as a base64 data URI suitable for
// direct browser download.
func (d *Document) DataURI() string {
	if d == nil || len(d.Data) == 0 {
		return ""
	}
	return "data:" + d.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

// DocumentFromDataURI decodes a base64 data URI produced by DataURI.
func DocumentFromDataURI(uri string) (*Document, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", ErrInvalidInput)
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, fmt.Errorf("%w: data URI is not base64 encoded", ErrInvalidInput)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding data URI: %v", ErrInvalidInput, err)
	}
	return &Document{MIMEType: mime, Data: data}, nil
}

// Extension returns the file extension matching the MIME type.
func (d *Document) Extension() string {
	switch d.MIMEType {
	case MIMETypePDF:
		return ".pdf"
	case MIMETypePNG:
		return ".png"
	default:
		return ".bin"
	}
}

// SnapshotFormat is the container of a dashboard snapshot.
type SnapshotFormat string

// Snapshot formats.
const (
	SnapshotPNG SnapshotFormat = "png"
	SnapshotPDF SnapshotFormat = "pdf"
)

// ParseSnapshotFormat converts a string into a SnapshotFormat.
// The empty string selects PNG.
func ParseSnapshotFormat(s string) (SnapshotFormat, error) {
	switch SnapshotFormat(s) {
	case "", SnapshotPNG:
		return SnapshotPNG, nil
	case SnapshotPDF:
		return SnapshotPDF, nil
	default:
		return "", fmt.Errorf("%w: unknown snapshot format %q", ErrInvalidInput, s)
	}
}
