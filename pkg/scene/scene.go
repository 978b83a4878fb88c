package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/geometry"
)

// Format names a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf infers the encoding from a file name's extension.
func FormatOf(path string) (Format, error) {
	if err := errors.ValidateSceneFilename(filepath.Base(path)); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// Document is a decoded scene file.
type Document struct {
	Name       string  `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Width      float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height     float64 `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Background string  `json:"background,omitempty" toml:"background,omitempty" yaml:"background,omitempty"`
	Root       *Node   `json:"root" toml:"root" yaml:"root"`
}

// Node is one element of a scene tree. Which fields apply depends on Type.
type Node struct {
	Type      string   `json:"type" toml:"type" yaml:"type"`
	Text      string   `json:"text,omitempty" toml:"text,omitempty" yaml:"text,omitempty"`
	Color     string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Width     *float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height    *float64 `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Spacing   float64  `json:"spacing,omitempty" toml:"spacing,omitempty" yaml:"spacing,omitempty"`
	Alignment string   `json:"alignment,omitempty" toml:"alignment,omitempty" yaml:"alignment,omitempty"`
	Axes      string   `json:"axes,omitempty" toml:"axes,omitempty" yaml:"axes,omitempty"`
	LineWidth float64  `json:"line_width,omitempty" toml:"line_width,omitempty" yaml:"line_width,omitempty"`
	Fraction  float64  `json:"fraction,omitempty" toml:"fraction,omitempty" yaml:"fraction,omitempty"`
	Children  []*Node  `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
	Content   *Node    `json:"content,omitempty" toml:"content,omitempty" yaml:"content,omitempty"`
	Overlay   *Node    `json:"overlay,omitempty" toml:"overlay,omitempty" yaml:"overlay,omitempty"`
}

// Size returns the document's target size, falling back to fallback for
// dimensions the document leaves unset.
func (d *Document) Size(fallback geometry.Size) geometry.Size {
	s := fallback
	if d.Width > 0 {
		s.Width = d.Width
	}
	if d.Height > 0 {
		s.Height = d.Height
	}
	return s
}

// Parse decodes a scene document. Unknown fields are an error in every
// format.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown fields: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	if doc.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no root node")
	}
	return &doc, nil
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", path)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Canonical returns a stable JSON encoding of d, suitable for hashing.
func (d *Document) Canonical() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "encode scene")
	}
	return data, nil
}
