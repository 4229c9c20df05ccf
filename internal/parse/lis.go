// Package parse reads the tabular .lis files produced by the tensile-test
// instrument (BAM 5.2 system, KupferDigital dataset). The files use German
// column headers and the decimal-comma convention.
package parse

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/malwinabelczewska/strenpy/internal/model"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrorKind classifies parser failures.
type ErrorKind string

const (
	KindMalformedNumber ErrorKind = "malformed-number"
	KindMissingColumn   ErrorKind = "missing-column"
	KindEmptyFile       ErrorKind = "empty-file"
)

// ParseError reports a failure to parse an instrument file.
type ParseError struct {
	Kind   ErrorKind
	Line   int    // 1-based line number, 0 when not tied to a line
	Column string // column name for missing-column
	Token  string // offending token for malformed-number
	Detail string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindMalformedNumber:
		return fmt.Sprintf("parse: malformed number %q at line %d", e.Token, e.Line)
	case KindMissingColumn:
		return fmt.Sprintf("parse: missing column %q", e.Column)
	default:
		return fmt.Sprintf("parse: %s: %s", e.Kind, e.Detail)
	}
}

// dataSection marks the start of the measurement table.
const dataSection = "[Daten]"

// Required column headers. Matching is by name, not position: the instrument
// is free to reorder columns between exports.
const (
	colDisplacement = "Weg"      // mm
	colForce        = "Kraft"    // N
	colStress       = "Spannung" // MPa
)

// Parse converts raw .lis file content into an ordered sample sequence.
// It is a pure transform; use ReadFile for the filesystem wrapper.
func Parse(content string) ([]model.Sample, error) {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, dataSection) {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(lines) {
		return nil, &ParseError{Kind: KindEmptyFile, Detail: "no " + dataSection + " section"}
	}

	// Header line: first non-blank line after the section marker.
	headerLine := -1
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			headerLine = i
			break
		}
	}
	if headerLine < 0 {
		return nil, &ParseError{Kind: KindEmptyFile, Detail: "no column header after " + dataSection}
	}

	cols, err := mapColumns(lines[headerLine])
	if err != nil {
		return nil, err
	}

	// The line after the header carries units ("mm", "N", "MPa"); skip it.
	dataStart := headerLine + 2

	var samples []model.Sample
	for i := dataStart; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			break // next section
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= cols.max() {
			continue // non-data line (comments, trailing metadata)
		}

		s := model.Sample{}
		for _, want := range []struct {
			idx int
			dst *float64
		}{
			{cols.displacement, &s.Displacement},
			{cols.force, &s.Force},
			{cols.stress, &s.InstrumentStress},
		} {
			v, err := parseDecimalComma(fields[want.idx])
			if err != nil {
				return nil, &ParseError{Kind: KindMalformedNumber, Line: i + 1, Token: strings.TrimSpace(fields[want.idx])}
			}
			*want.dst = v
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, &ParseError{Kind: KindEmptyFile, Detail: "no data rows in " + dataSection}
	}
	return samples, nil
}

// ReadFile reads and decodes an instrument file, then parses it.
// The instrument writes Latin-1, not UTF-8.
func ReadFile(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instrument file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoded, err := io.ReadAll(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode instrument file: %w", err)
	}
	return Parse(string(decoded))
}

// columnMap holds the name→index mapping built once per file.
type columnMap struct {
	displacement int
	force        int
	stress       int
}

func (c columnMap) max() int {
	m := c.displacement
	if c.force > m {
		m = c.force
	}
	if c.stress > m {
		m = c.stress
	}
	return m
}

// mapColumns resolves the three required columns from the header line.
func mapColumns(header string) (columnMap, error) {
	cols := columnMap{displacement: -1, force: -1, stress: -1}

	for i, name := range strings.Split(header, "\t") {
		switch strings.TrimSpace(name) {
		case colDisplacement:
			cols.displacement = i
		case colForce:
			cols.force = i
		case colStress:
			cols.stress = i
		}
	}

	for _, req := range []struct {
		idx  int
		name string
	}{
		{cols.displacement, colDisplacement},
		{cols.force, colForce},
		{cols.stress, colStress},
	} {
		if req.idx < 0 {
			return columnMap{}, &ParseError{Kind: KindMissingColumn, Column: req.name}
		}
	}
	return cols, nil
}

// parseDecimalComma parses a numeric token under the European convention.
func parseDecimalComma(token string) (float64, error) {
	token = strings.TrimSpace(token)
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
}
