// Package codec provides compression and decompression for stored files.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnknownCodec is returned by Encode for an unregistered extension.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

// Registry selects a codec by file extension.
type Registry struct {
	fallback Codec
	byExt    map[string]Codec
}

// NewRegistry returns a registry recognizing the extensions of codecs.
// Names without a recognized extension use fallback.
func NewRegistry(fallback Codec, codecs ...Codec) *Registry {
	r := &Registry{fallback: fallback, byExt: make(map[string]Codec, len(codecs))}
	for _, c := range codecs {
		if ext := c.Extension(); ext != "" {
			r.byExt[ext] = c
		}
	}
	return r
}

// ForName returns the codec for name and name with the codec extension
// removed, so "games.pgn.zst" yields the zstd codec and "games.pgn".
func (r *Registry) ForName(name string) (Codec, string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		if c, ok := r.byExt[name[i+1:]]; ok {
			return c, name[:i]
		}
	}
	return r.fallback, name
}

// Decode decompresses a whole object according to its name. It returns the
// content and the inner name.
func (r *Registry) Decode(name string, data []byte) ([]byte, string, error) {
	c, inner := r.ForName(name)

	rc, err := c.Reader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("creating %s decompressor: %w", label(c), err)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", fmt.Errorf("decompressing %s: %w", name, err)
	}
	return out, inner, nil
}

// Encode compresses data with the codec registered for ext and returns it
// with the name it should be stored under. An empty ext uses the fallback
// and leaves name unchanged.
func (r *Registry) Encode(ext, name string, data []byte) ([]byte, string, error) {
	c := r.fallback
	if ext != "" {
		var ok bool
		if c, ok = r.byExt[ext]; !ok {
			return nil, "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownCodec, ext, strings.Join(r.Extensions(), ", "))
		}
		name += "." + ext
	}

	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		return nil, "", fmt.Errorf("creating %s compressor: %w", label(c), err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, "", fmt.Errorf("compressing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("compressing %s: %w", name, err)
	}
	return buf.Bytes(), name, nil
}

// Extensions lists the registered codec extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func label(c Codec) string {
	if ext := c.Extension(); ext != "" {
		return ext
	}
	return "plain"
}
