// pkg/util/resources.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// NewResourcesFS returns a file system for loading fonts and images. If
// dir is non-empty, it is used directly. Otherwise the directory holding
// the executable is used, preferring a "resources" directory next to it
// (../Resources on macOS) and then one under the current working
// directory if either exists.
func NewResourcesFS(dir string) (fs.StatFS, error) {
	if dir != "" {
		return dirFS(dir)
	}

	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locating executable: %w", err)
	}
	exeDir := filepath.Dir(path)

	candidates := []string{filepath.Join(exeDir, "resources")}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, filepath.Clean(filepath.Join(exeDir, "..", "Resources")))
	}
	// Try CWD (this is useful for development and debugging but shouldn't
	// be needed for release builds.
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, "resources"))
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.IsDir() {
			return dirFS(c)
		}
	}
	return dirFS(exeDir)
}

func dirFS(dir string) (fs.StatFS, error) {
	fsys, ok := os.DirFS(dir).(fs.StatFS)
	if !ok {
		return nil, errors.New("FS from DirFS is not a StatFS?")
	}
	return fsys, nil
}

// Unfortunately, unlike io.ReadCloser, the zstd Decoder's Close() method
// doesn't return an error, so we need to make our own custom ReadCloser
// interface.
type ResourceReadCloser interface {
	io.Reader
	Close()
}

type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() {}

// LoadResource provides a ResourceReadCloser to access the specified file
// in fsys; if it's zstd compressed, the Reader will handle decompression
// transparently.
func LoadResource(fsys fs.FS, path string) (ResourceReadCloser, error) {
	f, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	br := bytesReadCloser{bytes.NewReader(f)}

	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return zr, nil
	}

	return br, nil
}

func LoadResourceBytes(fsys fs.FS, path string) ([]byte, error) {
	r, err := LoadResource(fsys, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ResourceExists returns true if the specified resource file exists.
func ResourceExists(fsys fs.FS, path string) bool {
	_, err := fs.Stat(fsys, path)
	return err == nil
}
