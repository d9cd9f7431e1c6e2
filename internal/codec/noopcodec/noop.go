// Package noopcodec stores content unchanged. It is the registry fallback
// for names without a compression extension.
package noopcodec

import (
	"io"

	"github.com/discochess/enginemetrics/internal/codec"
)

var _ codec.Codec = (*Codec)(nil)

// Codec passes bytes through.
type Codec struct{}

// New returns the pass-through codec.
func New() *Codec {
	return &Codec{}
}

// Reader returns r. Closing the result does not close r.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// Writer returns w. Closing the result does not close w, matching the
// compressing codecs, which only flush on Close.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return passthrough{w}, nil
}

// Extension is empty: plain files carry no codec extension.
func (c *Codec) Extension() string {
	return ""
}

type passthrough struct {
	io.Writer
}

func (passthrough) Close() error { return nil }
