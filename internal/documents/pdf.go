package documents

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractedTextLimit caps how much extracted text is persisted per document.
const extractedTextLimit = 20000

type pdfInfo struct {
	pageCount int
	text      string
}

// inspectPDF validates the file, counts pages, and extracts plain text.
// Encrypted PDFs are rejected; files pdfcpu cannot read are invalid.
func inspectPDF(data []byte) (*pdfInfo, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		if isEncryptionError(err) {
			return nil, ErrEncrypted
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return &pdfInfo{
		pageCount: count,
		text:      extractText(data),
	}, nil
}

func isEncryptionError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "encrypt") || strings.Contains(msg, "password")
}

// extractText pulls plain text for keyword and model classification.
// Extraction failures degrade to empty text; classification then works from
// the filename alone.
func extractText(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return ""
	}

	text, err := io.ReadAll(io.LimitReader(content, extractedTextLimit))
	if err != nil {
		return ""
	}

	return string(text)
}

type archiveEntry struct {
	filename string
	data     []byte
}

// archiveEntries expands a ZIP archive into its PDF file entries.
// Directories, hidden files, and macOS resource forks are skipped silently;
// non-PDF files surface as errors so batch results can report them.
func archiveEntries(archive []byte) ([]archiveEntry, []BatchResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not a zip archive", ErrInvalidFile)
	}

	var entries []archiveEntry
	var skipped []BatchResult

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		name := filepath.Base(file.Name)
		if strings.HasPrefix(name, ".") || strings.HasPrefix(file.Name, "__MACOSX/") {
			continue
		}

		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			skipped = append(skipped, BatchResult{
				Filename: name,
				Error:    "unsupported file type",
			})
			continue
		}

		rc, err := file.Open()
		if err != nil {
			skipped = append(skipped, BatchResult{
				Filename: name,
				Error:    fmt.Sprintf("read archive entry: %v", err),
			})
			continue
		}

		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			skipped = append(skipped, BatchResult{
				Filename: name,
				Error:    fmt.Sprintf("read archive entry: %v", err),
			})
			continue
		}

		entries = append(entries, archiveEntry{filename: name, data: data})
	}

	return entries, skipped, nil
}
