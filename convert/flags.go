package convert

import (
	"strings"

	cli "github.com/urfave/cli/v3"

	"themec/common"
)

func zipCodePageFlag() cli.Flag {
	return &cli.StringFlag{Name: "force-zip-cp",
		Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"}
}

// CompileFlags returns flags of compile subcommand.
func CompileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: "default", Usage: "default origin document `FILE`, could be specified multiple times"},
		&cli.StringSliceFlag{Name: "theme", Aliases: []string{"t"}, Usage: "theme origin document `FILE`, could be specified multiple times"},
		&cli.StringSliceFlag{Name: "custom", Usage: "custom (user) origin document `FILE`, could be specified multiple times"},
		&cli.StringFlag{Name: "blocks", Usage: "load block definitions from `FILE` (YAML or JSON) instead of built-in core blocks"},
		&cli.StringFlag{Name: "types",
			Usage: "comma separated `LIST` of stylesheet sections (supported sections: " + strings.Join(common.SectionNames(), ", ") + ")"},
		&cli.StringFlag{Name: "namespace", Usage: "custom property `PREFIX`"},
		&cli.StringFlag{Name: "scope", Usage: "scope all generated rules under `SELECTOR`"},
		&cli.StringFlag{Name: "root", Usage: "`SELECTOR` for root styles"},
		&cli.BoolFlag{Name: "allow-css", Usage: "keep raw custom css from documents"},
		&cli.BoolFlag{Name: "skip-root-layout", Usage: "do not emit root layout rules"},
		&cli.BoolFlag{Name: "tree", Usage: "write resolved style tree (JSON) next to the stylesheet"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exits, overwrite files"},
		zipCodePageFlag(),
	}
}

// MigrateFlags returns flags of migrate subcommand.
func MigrateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "origin", Value: common.OriginTheme.String(),
			Usage: "document origin `NAME` (supported origins: " + strings.Join(common.OriginNames(), ", ") + ")"},
		&cli.StringFlag{Name: "to", Usage: "output `FORMAT` (json, yaml), if absent - same as source"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exits, overwrite files"},
		zipCodePageFlag(),
	}
}

// SpacingFlags returns flags of spacing subcommand, defaults describe
// commonly used scale.
func SpacingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "operator", Value: "*", Usage: "scale `OPERATOR` (+ or *)"},
		&cli.FloatFlag{Name: "increment", Value: 1.5, Usage: "step `VALUE`"},
		&cli.FloatFlag{Name: "steps", Value: 7, Usage: "`NUMBER` of sizes"},
		&cli.FloatFlag{Name: "medium", Value: 1.5, Usage: "medium size `VALUE`"},
		&cli.StringFlag{Name: "unit", Value: "rem", Usage: "css `UNIT`"},
		&cli.StringFlag{Name: "to", Value: common.FormatYaml.String(), Usage: "output `FORMAT` (json, yaml)"},
	}
}
