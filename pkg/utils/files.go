// Package utils provides helpers for loading ROM images from disk.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/go-faster/errors"
)

// ErrEmptyArchive is returned for archives without a file to load.
var ErrEmptyArchive = errors.New("archive holds no files")

// romExtensions are preferred when picking a file out of an archive.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// Archives yield their first ROM file, or their first file if none has
// a ROM extension.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	// try to assert the compression type from the file extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "gzip")
		}
		defer r.Close()
		return readAll(r, "gzip")
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.Wrap(err, "zip")
		}
		names := make([]string, len(r.File))
		for i, f := range r.File {
			names[i] = f.Name
		}
		i, ok := pick(names)
		if !ok {
			return nil, ErrEmptyArchive
		}
		rc, err := r.File[i].Open()
		if err != nil {
			return nil, errors.Wrapf(err, "zip: open %s", names[i])
		}
		defer rc.Close()
		return readAll(rc, "zip")
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.Wrap(err, "7z")
		}
		names := make([]string, len(r.File))
		for i, f := range r.File {
			names[i] = f.Name
		}
		i, ok := pick(names)
		if !ok {
			return nil, ErrEmptyArchive
		}
		rc, err := r.File[i].Open()
		if err != nil {
			return nil, errors.Wrapf(err, "7z: open %s", names[i])
		}
		defer rc.Close()
		return readAll(rc, "7z")
	}

	// return the data as is
	return data, nil
}

// pick returns the index of the file to load out of an archive.
func pick(names []string) (int, bool) {
	first := -1
	for i, name := range names {
		if strings.HasSuffix(name, "/") {
			continue // directory
		}
		ext := strings.ToLower(filepath.Ext(name))
		for _, romExt := range romExtensions {
			if ext == romExt {
				return i, true
			}
		}
		if first < 0 {
			first = i
		}
	}
	return first, first >= 0
}

func readAll(r io.Reader, format string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, format)
	}
	return data, nil
}
