package parse

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// lisContent assembles a minimal instrument file around the given header and
// data rows.
func lisContent(header string, rows ...string) string {
	var b strings.Builder
	b.WriteString("Prüfprotokoll Zugversuch\n")
	b.WriteString("Probe: Testmaterial\n")
	b.WriteString("\n")
	b.WriteString("[Daten]\n")
	b.WriteString(header + "\n")
	b.WriteString("s\tmm\tN\tMPa\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

func TestParse_BasicFile(t *testing.T) {
	content := lisContent(
		"Zeit\tWeg\tKraft\tSpannung",
		"0,0\t0,0\t0,0\t0,0",
		"0,1\t0,05\t125,5\t12,55",
		"0,2\t0,1\t251,0\t25,1",
	)

	samples, err := Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(samples) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(samples))
	}

	if samples[1].Displacement != 0.05 {
		t.Errorf("Expected displacement 0.05, got %v", samples[1].Displacement)
	}
	if samples[1].Force != 125.5 {
		t.Errorf("Expected force 125.5, got %v", samples[1].Force)
	}
	if samples[2].InstrumentStress != 25.1 {
		t.Errorf("Expected instrument stress 25.1, got %v", samples[2].InstrumentStress)
	}
}

func TestParse_ReorderedColumns(t *testing.T) {
	// Column order is not guaranteed across exports; mapping is by name.
	content := lisContent(
		"Spannung\tKraft\tZeit\tWeg",
		"10,0\t100,0\t0,0\t0,25",
	)

	samples, err := Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if samples[0].Displacement != 0.25 {
		t.Errorf("Expected displacement 0.25, got %v", samples[0].Displacement)
	}
	if samples[0].Force != 100.0 {
		t.Errorf("Expected force 100.0, got %v", samples[0].Force)
	}
	if samples[0].InstrumentStress != 10.0 {
		t.Errorf("Expected instrument stress 10.0, got %v", samples[0].InstrumentStress)
	}
}

func TestParse_SkipsBlankAndShortLines(t *testing.T) {
	content := lisContent(
		"Zeit\tWeg\tKraft\tSpannung",
		"0,0\t0,0\t0,0\t0,0",
		"",
		"Bemerkung",
		"0,1\t0,1\t10,0\t1,0",
	)

	samples, err := Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("Expected 2 samples, got %d", len(samples))
	}
}

func TestParse_StopsAtNextSection(t *testing.T) {
	content := lisContent(
		"Zeit\tWeg\tKraft\tSpannung",
		"0,0\t0,0\t0,0\t0,0",
		"0,1\t0,1\t10,0\t1,0",
	) + "[Statistik]\n1,0\t2,0\t3,0\t4,0\n"

	samples, err := Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("Expected 2 samples, got %d", len(samples))
	}
}

func TestParse_MissingColumn(t *testing.T) {
	content := lisContent(
		"Zeit\tWeg\tSpannung",
		"0,0\t0,0\t0,0",
	)

	_, err := Parse(content)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Kind != KindMissingColumn {
		t.Errorf("Expected kind %s, got %s", KindMissingColumn, pe.Kind)
	}
	if pe.Column != "Kraft" {
		t.Errorf("Expected missing column Kraft, got %q", pe.Column)
	}
}

func TestParse_MalformedNumber(t *testing.T) {
	content := lisContent(
		"Zeit\tWeg\tKraft\tSpannung",
		"0,0\t0,0\t0,0\t0,0",
		"0,1\tabc\t10,0\t1,0",
	)

	_, err := Parse(content)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Kind != KindMalformedNumber {
		t.Errorf("Expected kind %s, got %s", KindMalformedNumber, pe.Kind)
	}
	if pe.Token != "abc" {
		t.Errorf("Expected token abc, got %q", pe.Token)
	}
	if pe.Line == 0 {
		t.Error("Expected line number to be set")
	}
}

func TestParse_NoDataSection(t *testing.T) {
	_, err := Parse("Prüfprotokoll\nkeine Daten hier\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Kind != KindEmptyFile {
		t.Errorf("Expected kind %s, got %s", KindEmptyFile, pe.Kind)
	}
}

func TestParse_NoDataRows(t *testing.T) {
	content := lisContent("Zeit\tWeg\tKraft\tSpannung")

	_, err := Parse(content)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Kind != KindEmptyFile {
		t.Errorf("Expected kind %s, got %s", KindEmptyFile, pe.Kind)
	}
}

func TestParse_DecimalCommaPrecision(t *testing.T) {
	content := lisContent(
		"Zeit\tWeg\tKraft\tSpannung",
		"0,0\t1,2345\t-0,001\t1234,5678",
	)

	samples, err := Parse(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(samples[0].Displacement-1.2345) > 1e-12 {
		t.Errorf("Expected displacement 1.2345, got %v", samples[0].Displacement)
	}
	if math.Abs(samples[0].Force+0.001) > 1e-12 {
		t.Errorf("Expected force -0.001, got %v", samples[0].Force)
	}
	if math.Abs(samples[0].InstrumentStress-1234.5678) > 1e-9 {
		t.Errorf("Expected stress 1234.5678, got %v", samples[0].InstrumentStress)
	}
}
