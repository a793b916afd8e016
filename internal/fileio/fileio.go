// Package fileio opens input and output files for the CLI, transparently handling
// zstd compression for paths ending in ".zst" and "-" for stdin/stdout.
package fileio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdExt is the suffix that selects zstd compression.
const ZstdExt = ".zst"

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

// Compressed reports whether path selects zstd compression.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ZstdExt)
}

// BaseExt returns the extension of path ignoring a trailing ".zst",
// e.g. ".json" for "weather.json.zst".
func BaseExt(path string) string {
	p := strings.TrimSuffix(path, ZstdExt)
	if i := strings.LastIndexByte(p, '.'); i >= 0 && !strings.ContainsAny(p[i:], `/\`) {
		return strings.ToLower(p[i:])
	}
	return ""
}

// Open opens path for reading, decompressing when Compressed(path).
func Open(path string) (io.ReadCloser, error) {
	var f *os.File
	if path == Stdio {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, err
		}
	}
	if !Compressed(path) {
		return f, nil
	}
	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening zstd stream %s: %w", path, err)
	}
	return &zstdReadCloser{dec: dec, file: f}, nil
}

// Create opens path for writing (truncating), compressing when Compressed(path).
// Closing the returned writer flushes the compressor before closing the file.
func Create(path string) (io.WriteCloser, error) {
	var f *os.File
	if path == Stdio {
		f = os.Stdout
	} else {
		var err error
		if f, err = os.Create(path); err != nil {
			return nil, err
		}
	}
	if !Compressed(path) {
		if path == Stdio {
			return nopCloser{f}, nil
		}
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening zstd writer %s: %w", path, err)
	}
	return &zstdWriteCloser{enc: enc, file: f, closeFile: path != Stdio}, nil
}

type zstdReadCloser struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	if z.file == os.Stdin {
		return nil
	}
	return z.file.Close()
}

type zstdWriteCloser struct {
	enc       *zstd.Encoder
	file      *os.File
	closeFile bool
}

func (z *zstdWriteCloser) Write(p []byte) (int, error) {
	return z.enc.Write(p)
}

func (z *zstdWriteCloser) Close() error {
	if err := z.enc.Close(); err != nil {
		if z.closeFile {
			z.file.Close()
		}
		return err
	}
	if !z.closeFile {
		return nil
	}
	return z.file.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
