package schema

import (
	"fmt"

	"themec/common"
	"themec/tree"
)

// Step upgrades document data by exactly one version.
type Step func(data tree.Value, origin common.Origin) tree.Value

// settings paths renamed when going from version 1 to 2
var renamesV1 = []struct{ from, to []string }{
	{[]string{"border", "customRadius"}, []string{"border", "radius"}},
	{[]string{"spacing", "customMargin"}, []string{"spacing", "margin"}},
	{[]string{"spacing", "customPadding"}, []string{"spacing", "padding"}},
	{[]string{"typography", "customLineHeight"}, []string{"typography", "lineHeight"}},
}

// MigrationStep returns transformation from version from to from+1.
func MigrationStep(from int) (Step, error) {
	switch from {
	case 1:
		return migrateV1, nil
	case 2:
		return migrateV2, nil
	}
	return nil, fmt.Errorf("%w: no migration from version %d", ErrUnsupportedSchemaVersion, from)
}

// Migrate upgrades document to LatestVersion. Document of the latest version
// is returned as is.
func Migrate(doc *Document) (*Document, error) {
	ver := doc.Version
	if ver == 0 {
		ver = 1
	}
	if ver < 1 || ver > LatestVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchemaVersion, doc.Version)
	}
	if ver == LatestVersion {
		return doc, nil
	}

	data := doc.Data
	for ; ver < LatestVersion; ver++ {
		step, err := MigrationStep(ver)
		if err != nil {
			return nil, err
		}
		data = step(data, doc.Origin)
	}
	data = data.With([]string{"version"}, tree.Number(LatestVersion))
	return &Document{Origin: doc.Origin, Version: LatestVersion, Data: data}, nil
}

func migrateV1(data tree.Value, _ common.Origin) tree.Value {
	settings, ok := data.Get("settings")
	if !ok || !settings.IsMap() {
		return data.With([]string{"version"}, tree.Number(2))
	}
	settings = renameSettings(settings)
	if blocks, ok := settings.Get("blocks"); ok && blocks.IsMap() {
		for name, block := range blocks.Map().All() {
			if block.IsMap() {
				settings = settings.With([]string{"blocks", name}, renameSettings(block))
			}
		}
	}
	return data.With([]string{"settings"}, settings).With([]string{"version"}, tree.Number(2))
}

func renameSettings(node tree.Value) tree.Value {
	for _, r := range renamesV1 {
		old, ok := node.Lookup(r.from...)
		if !ok {
			continue
		}
		node = node.Without(r.from...)
		if !node.Has(r.to...) {
			node = node.With(r.to, old)
		}
	}
	return node
}

// Starting with version 3 themes providing their own font and spacing sizes
// no longer get default sizes mixed in.
func migrateV2(data tree.Value, origin common.Origin) tree.Value {
	data = data.With([]string{"version"}, tree.Number(3))
	if origin != common.OriginTheme {
		return data
	}
	settings, ok := data.Get("settings")
	if !ok || !settings.IsMap() {
		return data
	}

	if settings.Has("typography", "fontSizes") && !settings.Has("typography", "defaultFontSizes") {
		settings = settings.With([]string{"typography", "defaultFontSizes"}, tree.Bool(false))
	}

	hasSizes := settings.Has("spacing", "spacingSizes")
	hasScale := settings.Has("spacing", "spacingScale")
	if (hasSizes || hasScale) && !settings.Has("spacing", "defaultSpacingSizes") {
		settings = settings.With([]string{"spacing", "defaultSpacingSizes"}, tree.Bool(false))
	}
	if hasSizes && !hasScale {
		settings = settings.With([]string{"spacing", "spacingScale"}, tree.Object(tree.MapOf("steps", 0)))
	}
	return data.With([]string{"settings"}, settings)
}
