package response

import (
	"encoding/json"
	"io"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// Builder renders consistent JSON envelopes for command output.
type Builder struct {
	w      io.Writer
	data   any
	err    error
	meta   map[string]any
	indent bool
}

// New instantiates a Builder writing to w.
func New(w io.Writer) *Builder {
	return &Builder{w: w, indent: true}
}

// Compact disables indentation.
func (b *Builder) Compact() *Builder {
	b.indent = false
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// WithMeta appends auxiliary metadata to the response.
func (b *Builder) WithMeta(key string, value any) *Builder {
	if key == "" {
		return b
	}
	if b.meta == nil {
		b.meta = make(map[string]any)
	}
	b.meta[key] = value
	return b
}

// Build writes the envelope. The returned error only reports write failures;
// a recorded application error is rendered, not returned.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	payload := struct {
		Success bool           `json:"success"`
		Data    any            `json:"data,omitempty"`
		Meta    map[string]any `json:"meta,omitempty"`
	}{
		Success: true,
		Data:    b.data,
		Meta:    b.meta,
	}
	return b.encode(payload)
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	payload := struct {
		Success bool `json:"success"`
		Error   struct {
			Kind    string         `json:"kind"`
			Message string         `json:"message"`
			Details map[string]any `json:"details,omitempty"`
		} `json:"error"`
		Meta map[string]any `json:"meta,omitempty"`
	}{
		Success: false,
		Meta:    b.meta,
	}
	payload.Error.Kind = string(appErr.Kind())
	payload.Error.Message = appErr.Message()
	payload.Error.Details = appErr.Details()

	return b.encode(payload)
}

func (b *Builder) encode(payload any) error {
	enc := json.NewEncoder(b.w)
	if b.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(payload)
}
