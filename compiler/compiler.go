// Package compiler runs complete pipeline turning configuration layers into
// stylesheet: migrate, normalize, merge, sanitize, resolve and generate.
package compiler

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"themec/merge"
	"themec/presets"
	"themec/registry"
	"themec/resolve"
	"themec/sanitize"
	"themec/schema"
	"themec/stylesheet"
	"themec/tree"
)

// Options of a single compile.
type Options struct {
	// AllowRawCSS is the capability to keep verbatim custom CSS.
	AllowRawCSS bool
	// AllowList overrides the default document schema.
	AllowList  *sanitize.AllowList
	Stylesheet stylesheet.Options
}

// Result of a compile.
type Result struct {
	CSS   string
	Sheet *stylesheet.Sheet
	// Merged is the merged document before sanitizing.
	Merged *schema.Document
	// Tree is sanitized and resolved tree the stylesheet was generated from.
	Tree tree.Value
	// Dropped lists paths removed by sanitizer.
	Dropped []string
}

// Compile produces stylesheet from documents. Documents are processed in
// ascending origin precedence, documents of the same origin keep their
// relative order. The only error is schema.ErrUnsupportedSchemaVersion,
// everything else is silently dropped.
func Compile(docs []*schema.Document, reg registry.Registry, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	layers := make([]*schema.Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			layers = append(layers, d)
		}
	}
	slices.SortStableFunc(layers, func(a, b *schema.Document) int {
		return int(a.Origin) - int(b.Origin)
	})

	for i, d := range layers {
		migrated, err := schema.Migrate(d)
		if err != nil {
			return nil, fmt.Errorf("unable to migrate %s document: %w", d.Origin, err)
		}
		if migrated.Version != d.Version {
			log.Debug("Document migrated", zap.Stringer("origin", d.Origin), zap.Int("from", d.Version), zap.Int("to", migrated.Version))
		}
		layers[i] = presets.Normalize(migrated)
	}
	merged := merge.Merge(layers)
	mergeTime := time.Since(start)

	allow := opts.AllowList
	if allow == nil {
		allow = sanitize.DefaultAllowList()
	}
	sopts := sanitize.Options{AllowRawCSS: opts.AllowRawCSS}

	clean, dropped := sanitize.Report(merged.Data, allow, sopts)
	resolved := resolve.New(opts.Stylesheet.Namespace).ResolveAgainst(clean, merged.Data)
	final, late := sanitize.Report(resolved, allow, sopts)
	dropped = append(dropped, late...)
	sanitizeTime := time.Since(start) - mergeTime

	sheet := stylesheet.Generate(final, reg, opts.Stylesheet)
	res := &Result{
		CSS:     sheet.String(),
		Sheet:   sheet,
		Merged:  merged,
		Tree:    final,
		Dropped: dropped,
	}

	log.Debug("Compiled",
		zap.Int("layers", len(layers)),
		zap.Int("dropped", len(dropped)),
		zap.Int("css", len(res.CSS)),
		zap.Duration("merge", mergeTime),
		zap.Duration("sanitize", sanitizeTime),
		zap.Duration("total", time.Since(start)),
	)
	return res, nil
}
