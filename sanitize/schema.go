package sanitize

import (
	"themec/presets"
)

// pseudo-states elements and blocks may style
var (
	ElementPseudos = []string{":link", ":any-link", ":visited", ":hover", ":focus", ":focus-visible", ":active"}
	BlockPseudos   = []string{":hover", ":focus", ":focus-visible", ":active"}
)

var sides = []string{"top", "right", "bottom", "left"}

var styleLeaves = []struct {
	path     string
	validate Validator
}{
	{"background.backgroundImage", BackgroundImage},
	{"background.backgroundPosition", CSSValue},
	{"background.backgroundRepeat", CSSValue},
	{"background.backgroundSize", CSSValue},
	{"background.backgroundAttachment", CSSValue},
	{"border.color", CSSValue},
	{"border.radius", CSSValue},
	{"border.radius.topLeft", CSSValue},
	{"border.radius.topRight", CSSValue},
	{"border.radius.bottomLeft", CSSValue},
	{"border.radius.bottomRight", CSSValue},
	{"border.style", CSSValue},
	{"border.width", CSSValue},
	{"color.background", CSSValue},
	{"color.gradient", CSSValue},
	{"color.text", CSSValue},
	{"dimensions.aspectRatio", CSSValue},
	{"dimensions.minHeight", CSSValue},
	{"filter.duotone", CSSValue},
	{"outline.color", CSSValue},
	{"outline.offset", CSSValue},
	{"outline.style", CSSValue},
	{"outline.width", CSSValue},
	{"shadow", CSSValue},
	{"spacing.blockGap", CSSValue},
	{"spacing.blockGap.top", CSSValue},
	{"spacing.blockGap.left", CSSValue},
	{"spacing.margin", CSSValue},
	{"spacing.padding", CSSValue},
	{"typography.fontFamily", CSSValue},
	{"typography.fontSize", CSSValue},
	{"typography.fontStyle", CSSValue},
	{"typography.fontWeight", CSSValue},
	{"typography.letterSpacing", CSSValue},
	{"typography.lineHeight", CSSValue},
	{"typography.textAlign", CSSValue},
	{"typography.textColumns", CSSValue},
	{"typography.textDecoration", CSSValue},
	{"typography.textTransform", CSSValue},
	{"typography.writingMode", CSSValue},
}

var settingLeaves = []string{
	"appearanceTools",
	"useRootPaddingAwareAlignments",
	"background.backgroundImage",
	"background.backgroundSize",
	"border.color",
	"border.radius",
	"border.style",
	"border.width",
	"color.background",
	"color.button",
	"color.caption",
	"color.custom",
	"color.customDuotone",
	"color.customGradient",
	"color.defaultDuotone",
	"color.defaultGradients",
	"color.defaultPalette",
	"color.heading",
	"color.link",
	"color.text",
	"dimensions.aspectRatio",
	"dimensions.defaultAspectRatios",
	"dimensions.minHeight",
	"layout.allowCustomContentAndWideSize",
	"layout.allowEditing",
	"layout.contentSize",
	"layout.wideSize",
	"lightbox.allowEditing",
	"lightbox.enabled",
	"position.fixed",
	"position.sticky",
	"shadow.defaultPresets",
	"spacing.blockGap",
	"spacing.customSpacingSize",
	"spacing.defaultSpacingSizes",
	"spacing.margin",
	"spacing.padding",
	"spacing.units",
	"spacing.spacingScale.operator",
	"spacing.spacingScale.increment",
	"spacing.spacingScale.steps",
	"spacing.spacingScale.mediumStep",
	"spacing.spacingScale.unit",
	"typography.customFontSize",
	"typography.defaultFontSizes",
	"typography.dropCap",
	"typography.fluid",
	"typography.fluid.minFontSize",
	"typography.fluid.maxViewportWidth",
	"typography.fluid.minViewportWidth",
	"typography.fontStyle",
	"typography.fontWeight",
	"typography.letterSpacing",
	"typography.lineHeight",
	"typography.textAlign",
	"typography.textColumns",
	"typography.textDecoration",
	"typography.textTransform",
	"typography.writingMode",
}

func (a *AllowList) addSettings(prefix string) {
	for _, p := range settingLeaves {
		a.Add(prefix+"."+p, Setting)
	}
	for _, c := range presets.Categories {
		a.AddPresets(prefix+"."+c.String(), c)
	}
	a.AddOpen(prefix+".custom", Setting)
}

func (a *AllowList) addStyles(prefix string) {
	for _, l := range styleLeaves {
		a.Add(prefix+"."+l.path, l.validate)
	}
	for _, side := range sides {
		a.Add(prefix+".spacing.margin."+side, CSSValue)
		a.Add(prefix+".spacing.padding."+side, CSSValue)
		a.Add(prefix+".border."+side, CSSValue)
		for _, prop := range []string{"color", "style", "width"} {
			a.Add(prefix+".border."+side+"."+prop, CSSValue)
		}
	}
}

func (a *AllowList) addElements(prefix string) {
	el := prefix + ".elements." + Wildcard
	a.addStyles(el)
	for _, pseudo := range ElementPseudos {
		a.addStyles(el + "." + pseudo)
	}
}

// DefaultAllowList declares complete document schema: metadata, settings
// of the root and of every block, styles of the root, elements, blocks,
// block pseudo-states and block style variations with their own nested
// elements and blocks.
func DefaultAllowList() *AllowList {
	a := NewAllowList()
	a.Add("version", Number)
	for _, p := range []string{"$schema", "title", "slug", "description"} {
		a.Add(p, Text)
	}
	for _, p := range []string{"customTemplates", "templateParts", "patterns"} {
		a.AddOpen(p, Text)
	}

	a.addSettings("settings")
	a.addSettings("settings.blocks." + Wildcard)

	a.addStyles("styles")
	a.AddRawCSS("styles.css")
	a.addElements("styles")

	block := "styles.blocks." + Wildcard
	a.addStyles(block)
	a.AddRawCSS(block + ".css")
	a.addElements(block)
	for _, pseudo := range BlockPseudos {
		a.addStyles(block + "." + pseudo)
	}

	variation := block + ".variations." + Wildcard
	a.addStyles(variation)
	a.AddRawCSS(variation + ".css")
	a.addElements(variation)
	a.addStyles(variation + ".blocks." + Wildcard)
	a.addElements(variation + ".blocks." + Wildcard)
	return a
}
