package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
)

// FileReader is the façade from spec.md §4.4: GetLine opens path lazily on
// first use as a line-buffered reader and keeps the *bufio.Reader cached for
// subsequent calls. Programs have no close operation; every cached handle is
// closed by Close when the owning VM is torn down (VM.Close).
type FileReader struct {
	reg *Registry[bufio.Reader]
	// files keeps the *os.File alive as long as its *bufio.Reader is cached,
	// and lets VM teardown close every handle explicitly (§6 "no explicit
	// close operation ... all handles close on VM teardown").
	files map[string]*os.File

	// decoder transcodes each line's raw bytes before they reach the
	// program, for input files the driver knows aren't already UTF-8
	// (grounded on the pack's internal/reader/value.go, which decodes
	// legacy Windows-1252/UTF-16LE registry text the same way). nil means
	// no transcoding: raw bytes are assumed valid UTF-8.
	decoder *encoding.Decoder
}

// NewFileReader constructs an empty file-reader registry.
func NewFileReader() *FileReader {
	return &FileReader{
		reg:   NewRegistry[bufio.Reader](),
		files: make(map[string]*os.File),
	}
}

// SetEncoding installs enc as the transcoder applied to every line GetLine
// reads from here on (already-cached readers are unaffected for lines
// already buffered, but every subsequent ReadBytes call transcodes). Pass
// nil to go back to treating input as UTF-8 directly.
func (fr *FileReader) SetEncoding(enc encoding.Encoding) {
	if enc == nil {
		fr.decoder = nil
		return
	}
	fr.decoder = enc.NewDecoder()
}

// GetLine reads up to and including the next newline from path into out,
// opening path on first use. Returns false at EOF. The newline is kept in
// out — spec.md §4.4 makes the caller own terminator policy. I/O errors are
// fatal and wrapped in errIO; there is no retry.
func (fr *FileReader) GetLine(path string, out *[]byte) (bool, error) {
	return RegistryGetOrCreateFallible(fr.reg, path,
		func(p string) (*bufio.Reader, error) {
			f, err := os.Open(p)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to open file %q: %v", errIO, p, err)
			}
			fr.files[p] = f
			return bufio.NewReader(f), nil
		},
		func(r *bufio.Reader) (bool, error) {
			line, err := r.ReadBytes('\n')
			if len(line) > 0 {
				if fr.decoder != nil {
					decoded, decErr := fr.decoder.Bytes(line)
					if decErr != nil {
						return false, fmt.Errorf("%w: transcoding %q: %v", errIO, path, decErr)
					}
					line = decoded
				}
				*out = append(*out, line...)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return len(line) > 0, nil
				}
				return false, fmt.Errorf("%w: %v", errIO, err)
			}
			return true, nil
		},
	)
}

// Close closes every file handle opened by GetLine. Called once, at VM
// teardown.
func (fr *FileReader) Close() {
	for _, f := range fr.files {
		_ = f.Close()
	}
}
