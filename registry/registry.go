// Package registry provides block type definitions: selectors used for block
// styles and features blocks support.
package registry

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"themec/common"
	"themec/tree"
)

// RootFeature is the selector key of the block itself.
const RootFeature = "root"

// Registry looks block types up by name. Implementations must be safe for
// concurrent use.
type Registry interface {
	Lookup(name string) (*BlockType, bool)
}

// BlockType is read only after construction.
type BlockType struct {
	Name string
	// Selectors by feature path, e.g. "root", "border", "typography.fontSize".
	Selectors map[string]string
	Supports  map[string]bool
}

// DefaultClassName derives block class from its namespaced name:
// "core/group" becomes ".wp-block-group", "acme/card" becomes
// ".wp-block-acme-card".
func DefaultClassName(name string) string {
	name = strings.TrimPrefix(name, "core/")
	return ".wp-block-" + strings.ReplaceAll(name, "/", "-")
}

// RootSelector returns declared root selector or the default class name.
func (b *BlockType) RootSelector() string {
	if s, ok := b.Selectors[RootFeature]; ok && s != "" {
		return s
	}
	return DefaultClassName(b.Name)
}

// Selector returns selector declared for feature. For "typography.fontSize"
// selector of "typography" is used when the subfeature has none.
func (b *BlockType) Selector(feature string) (string, bool) {
	if f := b.FeatureOf(feature); f != "" {
		return b.Selectors[f], true
	}
	return "", false
}

// FeatureOf returns the most specific feature key with own selector which
// covers style path, or empty string.
func (b *BlockType) FeatureOf(path string) string {
	for f := path; f != ""; {
		if s, ok := b.Selectors[f]; ok && s != "" && f != RootFeature {
			return f
		}
		i := strings.LastIndexByte(f, '.')
		if i < 0 {
			break
		}
		f = f[:i]
	}
	return ""
}

// Features returns feature keys having own selectors, sorted.
func (b *BlockType) Features() []string {
	out := make([]string, 0, len(b.Selectors))
	for f := range b.Selectors {
		if f != RootFeature {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}

// SupportsFeature reports whether block declares support for feature or for
// its parent feature.
func (b *BlockType) SupportsFeature(feature string) bool {
	for f := feature; f != ""; {
		if b.Supports[f] {
			return true
		}
		i := strings.LastIndexByte(f, '.')
		if i < 0 {
			break
		}
		f = f[:i]
	}
	return false
}

// Static is immutable map backed registry.
type Static struct {
	types map[string]*BlockType
	names []string
}

func NewStatic(types ...*BlockType) *Static {
	s := &Static{types: make(map[string]*BlockType, len(types))}
	for _, t := range types {
		if _, exists := s.types[t.Name]; !exists {
			s.names = append(s.names, t.Name)
		}
		s.types[t.Name] = t
	}
	slices.SortFunc(s.names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return s
}

func (s *Static) Lookup(name string) (*BlockType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns registered block names in natural order.
func (s *Static) Names() []string {
	return slices.Clone(s.names)
}

// Load reads block definitions:
//
//	blocks:
//	  - name: core/button
//	    selectors:
//	      root: .wp-block-button .wp-block-button__link
//	      typography:
//	        root: .wp-block-button
//	        fontSize: .wp-block-button__link
//	    supports: [color, typography.fontSize]
//
// Supports may also be given as a map of booleans.
func Load(r io.Reader, format common.Format) (*Static, error) {
	var (
		v   tree.Value
		err error
	)
	switch format {
	case common.FormatYaml:
		v, err = tree.DecodeYAML(r)
	default:
		v, err = tree.DecodeJSON(r)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read block definitions: %w", err)
	}

	blocks, ok := v.Get("blocks")
	if !ok || !blocks.IsList() {
		return nil, errors.New("block definitions must have list of blocks")
	}
	types := make([]*BlockType, 0, blocks.Len())
	for i, def := range blocks.Items() {
		bt, err := blockType(def)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		types = append(types, bt)
	}
	return NewStatic(types...), nil
}

func blockType(def tree.Value) (*BlockType, error) {
	nv, _ := def.Get("name")
	name, ok := nv.Str()
	if !ok || name == "" {
		return nil, errors.New("name is missing")
	}
	bt := &BlockType{
		Name:      name,
		Selectors: make(map[string]string),
		Supports:  make(map[string]bool),
	}

	sels, _ := def.Get("selectors")
	switch {
	case sels.IsString():
		bt.Selectors[RootFeature], _ = sels.Str()
	case sels.IsMap():
		flattenSelectors(bt.Selectors, sels, "")
	}

	sup, _ := def.Get("supports")
	switch {
	case sup.IsList():
		for _, f := range sup.Strings() {
			bt.Supports[f] = true
		}
	case sup.IsMap():
		flattenSupports(bt.Supports, sup, "")
	}
	return bt, nil
}

// flattenSelectors turns {typography: {root: a, fontSize: b}} into
// typography=a, typography.fontSize=b.
func flattenSelectors(dst map[string]string, v tree.Value, prefix string) {
	for k, item := range v.Map().All() {
		key := k
		if prefix != "" {
			key = prefix + "." + k
			if k == RootFeature {
				key = prefix
			}
		}
		switch {
		case item.IsString():
			dst[key], _ = item.Str()
		case item.IsMap():
			flattenSelectors(dst, item, key)
		}
	}
}

func flattenSupports(dst map[string]bool, v tree.Value, prefix string) {
	for k, item := range v.Map().All() {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if item.IsMap() {
			flattenSupports(dst, item, key)
			if item.Len() > 0 {
				dst[key] = true
			}
			continue
		}
		if b, ok := item.Bool(); ok {
			dst[key] = b
		} else {
			dst[key] = item.Truthy()
		}
	}
}
