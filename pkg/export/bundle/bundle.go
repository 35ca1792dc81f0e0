package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

const timestampLayout = "20060102150405"

// File is one named artifact produced by an export run.
type File struct {
	Name string
	Data []byte
}

func FlatFileName(invoiceNumber string, ts time.Time) string {
	return fmt.Sprintf("LEDES98B_%s_%s.txt", invoiceNumber, ts.Format(timestampLayout))
}

func XMLFileName(invoiceNumber string, ts time.Time) string {
	return fmt.Sprintf("LEDES_XML21_%s_%s.xml", invoiceNumber, ts.Format(timestampLayout))
}

func PDFFileName(invoiceNumber string, ts time.Time) string {
	return fmt.Sprintf("Invoice_%s_%s.pdf", invoiceNumber, ts.Format(timestampLayout))
}

func ArchiveName(ts time.Time) string {
	return fmt.Sprintf("invoices_%s.zip", ts.Format(timestampLayout))
}

// Zip packs the files, in order, into one deflate-compressed archive.
func Zip(files []File) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range files {
		entry, err := w.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %q to archive: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write %q into archive: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
