// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders qualifying-paper summaries as a CSV file or a
// human-readable console table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Header is the fixed CSV column set.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// multiValueSep joins multi-value cells (authors, companies).
const multiValueSep = "; "

// maxCellLen caps a single cell to keep pathological titles manageable.
const maxCellLen = 1000

// WriteCSV writes the header row and one row per summary to w.
func WriteCSV(summaries []types.PaperSummary, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, s := range summaries {
		if err := cw.Write(row(s)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", s.PMID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}
	return nil
}

// CheckWritable verifies that path can be opened for writing, so a bad
// output location is reported before any work is spent producing rows.
// A file created only for the check is removed again; an existing file is
// left untouched.
func CheckWritable(path string) error {
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("output file %s is not writable: %w", path, err)
	}
	f.Close()
	if statErr != nil && os.IsNotExist(statErr) {
		os.Remove(path)
	}
	return nil
}

// WriteFile writes the summaries as CSV to path. Any failure surfaces as
// an error so the caller can exit non-zero.
func WriteFile(summaries []types.PaperSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	if err := WriteCSV(summaries, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", path, err)
	}
	return nil
}

// row converts one summary into CSV cells.
func row(s types.PaperSummary) []string {
	return []string{
		s.PMID,
		cleanText(s.Title),
		s.PubDate,
		strings.Join(s.NonAcademicAuthors, multiValueSep),
		strings.Join(s.Companies, multiValueSep),
		s.CorrespondingEmail,
	}
}

// cleanText collapses whitespace, strips embedded newlines and control
// characters, and truncates oversized values.
func cleanText(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	return truncate(cleaned, maxCellLen)
}

// FormatTable writes summaries as a console table to w.
func FormatTable(summaries []types.PaperSummary, w io.Writer) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No papers with company affiliations found.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-30s  %-30s  %s\n",
		"PubmedID", "Title", "Date", "Non-academic Author(s)", "Company Affiliation(s)", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 150))

	for _, s := range summaries {
		fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-30s  %-30s  %s\n",
			s.PMID,
			truncate(cleanText(s.Title), 50),
			truncate(s.PubDate, 12),
			truncate(strings.Join(s.NonAcademicAuthors, multiValueSep), 30),
			truncate(strings.Join(s.Companies, multiValueSep), 30),
			s.CorrespondingEmail)
	}

	fmt.Fprintf(w, "\n%d paper(s) with company affiliations\n", len(summaries))
}

// truncate caps s at max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
