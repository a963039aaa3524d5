package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ivlev/asciimator/internal/animation"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedData is returned when the input is not valid JSON or YAML.
	ErrMalformedData = errors.New("malformed animation data")
	// ErrSchemaMismatch is returned when required fields are missing or have the wrong shape.
	ErrSchemaMismatch = errors.New("animation data does not match schema")
	// ErrInvalidText is returned by Encode for frame lines that are not valid UTF-8.
	ErrInvalidText = errors.New("frame text is not valid UTF-8")
)

// Format selects the textual encoding of an animation.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (json, yaml)", s)
	}
}

// Document is the persisted shape of an animation. Pointers distinguish
// absent fields from zero values.
type Document struct {
	Frames       *[]FrameDocument `json:"frames" yaml:"frames"`
	CurrentFrame *int             `json:"current_frame" yaml:"current_frame"`
	Speed        *int             `json:"speed" yaml:"speed"`
}

// FrameDocument is the persisted shape of one frame. A nil entry in
// Content is a null line.
type FrameDocument struct {
	Content *[]*string `json:"content" yaml:"content"`
}

// NewDocument captures the full state of a.
func NewDocument(a *animation.Animation) Document {
	frames := make([]FrameDocument, 0, a.Len())
	for _, f := range a.Frames() {
		lines := make([]*string, 0, f.LineCount())
		for _, line := range f.Lines() {
			lines = append(lines, &line)
		}
		frames = append(frames, FrameDocument{Content: &lines})
	}
	cursor, speed := a.Cursor(), a.Speed()
	return Document{Frames: &frames, CurrentFrame: &cursor, Speed: &speed}
}

// Animation rebuilds the store from the document. The store's own
// construction path rejects documents that violate its invariants.
func (d Document) Animation() (*animation.Animation, error) {
	if d.Frames == nil {
		return nil, fmt.Errorf("%w: missing field \"frames\"", ErrSchemaMismatch)
	}
	if d.CurrentFrame == nil {
		return nil, fmt.Errorf("%w: missing field \"current_frame\"", ErrSchemaMismatch)
	}
	if d.Speed == nil {
		return nil, fmt.Errorf("%w: missing field \"speed\"", ErrSchemaMismatch)
	}
	if *d.CurrentFrame < 0 {
		return nil, fmt.Errorf("%w: \"current_frame\" must be non-negative, got %d", ErrSchemaMismatch, *d.CurrentFrame)
	}
	if *d.Speed < 0 {
		return nil, fmt.Errorf("%w: \"speed\" must be non-negative, got %d", ErrSchemaMismatch, *d.Speed)
	}

	frames := make([]animation.Frame, 0, len(*d.Frames))
	for i, fd := range *d.Frames {
		if fd.Content == nil {
			return nil, fmt.Errorf("%w: frame %d is missing field \"content\"", ErrSchemaMismatch, i)
		}
		lines := make([]string, 0, len(*fd.Content))
		for j, line := range *fd.Content {
			if line == nil {
				return nil, fmt.Errorf("%w: frame %d line %d is null", ErrSchemaMismatch, i, j)
			}
			lines = append(lines, *line)
		}
		frames = append(frames, animation.NewFrame(lines...))
	}

	return animation.Restore(frames, *d.CurrentFrame, *d.Speed)
}

// Encode serializes the full state of a. Lines that are not valid UTF-8
// are rejected rather than rewritten.
func Encode(a *animation.Animation, format Format) ([]byte, error) {
	for i, f := range a.Frames() {
		for j, line := range f.Lines() {
			if !utf8.ValidString(line) {
				return nil, fmt.Errorf("%w: frame %d line %d", ErrInvalidText, i, j)
			}
		}
	}
	doc := NewDocument(a)
	switch format {
	case JSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	case YAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Decode parses data and reconstructs the animation it describes.
func Decode(data []byte, format Format) (*animation.Animation, error) {
	var doc Document
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, classifyJSON(err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, classifyYAML(err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return doc.Animation()
}

func classifyJSON(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedData, err)
}

func classifyYAML(err error) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedData, err)
}

// Sniff guesses the format of data: a document whose first non-blank byte
// opens a JSON object is JSON, anything else is YAML.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return JSON
	}
	return YAML
}
