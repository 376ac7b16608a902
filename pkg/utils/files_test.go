package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/go-cmp/cmp"
)

var rom = []byte{0x00, 0xC3, 0x50, 0x01, 0xCE, 0xED}

func write(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Plain(t *testing.T) {
	got, err := LoadFile(write(t, "game.gb", rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(rom, got); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(rom); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(write(t, "game.gb.gz", buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(rom, got); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func zipArchive(t *testing.T, files map[string][]byte, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range order {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(files[name]); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadFile_Zip(t *testing.T) {
	files := map[string][]byte{
		"readme.txt": []byte("not a rom"),
		"game.gb":    rom,
	}
	data := zipArchive(t, files, []string{"readme.txt", "game.gb"})

	got, err := LoadFile(write(t, "game.zip", data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(rom, got); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_EmptyZip(t *testing.T) {
	data := zipArchive(t, nil, nil)

	if _, err := LoadFile(write(t, "empty.zip", data)); !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("Expected ErrEmptyArchive, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  int
		ok    bool
	}{
		{"rom extension preferred", []string{"a.txt", "dir/", "b.GB"}, 2, true},
		{"first file otherwise", []string{"dir/", "a.txt", "b.txt"}, 1, true},
		{"empty", nil, -1, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pick(tt.names)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Expected (%d, %t), got (%d, %t)", tt.want, tt.ok, got, ok)
			}
		})
	}
}
