package assembly

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCompressFileKeepsSmallerOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "source.pdf", bytes.Repeat([]byte("x"), 200))
	dst := filepath.Join(dir, "compressed.pdf")

	optimized := []byte("shrunk")
	reduced, err := compressFile(src, dst, func(_, dst string) error {
		return os.WriteFile(dst, optimized, 0600)
	})
	if err != nil {
		t.Fatalf("compressFile failed: %v", err)
	}
	if !reduced {
		t.Error("reduced = false for smaller output")
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(got, optimized) {
		t.Error("smaller optimized output was not kept")
	}
}

func TestCompressFileRestoresOriginalWhenNotSmaller(t *testing.T) {
	original := bytes.Repeat([]byte("x"), 200)

	tests := []struct {
		name      string
		optimized []byte
	}{
		{"larger output", bytes.Repeat([]byte("y"), 300)},
		{"equal size output", bytes.Repeat([]byte("y"), 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeTemp(t, dir, "source.pdf", original)
			dst := filepath.Join(dir, "compressed.pdf")

			reduced, err := compressFile(src, dst, func(_, dst string) error {
				return os.WriteFile(dst, tt.optimized, 0600)
			})
			if err != nil {
				t.Fatalf("compressFile failed: %v", err)
			}
			if reduced {
				t.Error("reduced = true for ineffective optimization")
			}

			got, err := os.ReadFile(dst)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if !bytes.Equal(got, original) {
				t.Error("output should be the original bytes when optimization does not shrink the file")
			}
		})
	}
}

func TestCompressFileOptimizeError(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "source.pdf", []byte("content"))
	dst := filepath.Join(dir, "compressed.pdf")

	boom := errors.New("optimize exploded")
	reduced, err := compressFile(src, dst, func(_, _ string) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if reduced {
		t.Error("reduced = true after optimize error")
	}
}

func TestFailureSnapshotCarriesProgress(t *testing.T) {
	id := uuid.New()
	last := Progress{
		PackageID: id,
		Status:    StatusRunning,
		Step:      StepNumber,
		Percent:   60,
		Message:   "stamping exhibit labels",
	}

	p := failureSnapshot(last, id, StatusFailed, errors.New("stamp failed"))

	if p.Status != StatusFailed {
		t.Errorf("status = %s, want %s", p.Status, StatusFailed)
	}
	if p.Step != StepNumber {
		t.Errorf("step = %s, want %s", p.Step, StepNumber)
	}
	if p.Percent != 60 {
		t.Errorf("percent = %d, want 60", p.Percent)
	}
	if p.Error != "stamp failed" {
		t.Errorf("error = %q, want %q", p.Error, "stamp failed")
	}
}
