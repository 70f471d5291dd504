// Package schema defines configuration documents and upgrades them to the
// latest supported shape.
package schema

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"themec/common"
	"themec/tree"
)

// LatestVersion is the canonical document shape produced by Migrate.
const LatestVersion = 3

// ErrUnsupportedSchemaVersion is returned for documents that cannot be
// migrated, it is the only fatal compile error.
var ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")

// Document is a single configuration layer. Documents are never modified,
// every transformation produces new one.
type Document struct {
	Origin  common.Origin
	Version int
	// Data is the document root map: version, settings, styles,
	// customTemplates, templateParts and anything else found in the source.
	Data tree.Value
}

// NewDocument wraps data into document reading version from it. Documents
// without version are version 1.
func NewDocument(origin common.Origin, data tree.Value) (*Document, error) {
	if !data.IsMap() {
		if !data.IsNull() {
			return nil, fmt.Errorf("document root must be an object, got %s", data.Kind())
		}
		data = tree.Object(nil)
	}
	ver := 0
	if v, ok := data.Get("version"); ok && !v.IsNull() {
		n, ok := v.Number()
		if !ok || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSchemaVersion, v)
		}
		ver = int(n)
	}
	return &Document{Origin: origin, Version: ver, Data: data}, nil
}

// Settings returns settings subtree, null when absent.
func (d *Document) Settings() tree.Value {
	v, _ := d.Data.Get("settings")
	return v
}

// Styles returns styles subtree, null when absent.
func (d *Document) Styles() tree.Value {
	v, _ := d.Data.Get("styles")
	return v
}

// Load decodes document from r. Byte order marks are honoured so documents
// saved as UTF-16 by some editors could be read as well.
func Load(r io.Reader, format common.Format, origin common.Origin) (*Document, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	br := bufio.NewReader(transform.NewReader(r, dec))

	var (
		data tree.Value
		err  error
	)
	switch format {
	case common.FormatYaml:
		data, err = tree.DecodeYAML(br)
	default:
		data, err = tree.DecodeJSON(br)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load %s document: %w", origin, err)
	}
	return NewDocument(origin, data)
}
