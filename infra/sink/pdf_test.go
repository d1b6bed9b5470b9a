package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPDFSink(t *testing.T) {
	dir := t.TempDir()
	s := NewPDFSink(dir, "")

	if err := s.RecordResults(sampleRun(), sampleResults()); err != nil {
		t.Fatalf("record: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "annual_potential_2023.pdf"))
	if err != nil {
		t.Fatalf("report missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("not a PDF file, starts with %q", data[:8])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small report: %d bytes", len(data))
	}
}
