// Package convert implements program subcommands: it locates and loads
// configuration documents, drives the compiler and writes results.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"
	yaml "gopkg.in/yaml.v3"

	"themec/archive"
	"themec/common"
	"themec/compiler"
	"themec/config"
	"themec/schema"
	"themec/spacing"
	"themec/state"
	"themec/stylesheet"
	"themec/tree"
	"themec/utils/debug"
)

// Compile merges configuration layers specified on the command line and
// produces stylesheet.
func Compile(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	applyCompilerFlags(cmd, &env.Cfg.Compiler)
	env.Overwrite = env.Cfg.Output.Overwrite || cmd.Bool("overwrite")
	selectCodePage(cmd.String("force-zip-cp"), env, log)

	if err := env.PrepareBlocks(); err != nil {
		return err
	}

	dst, err := destination(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	layers := []struct {
		origin common.Origin
		srcs   []string
	}{
		{common.OriginDefault, cmd.StringSlice("default")},
		{common.OriginTheme, cmd.StringSlice("theme")},
		{common.OriginCustom, cmd.StringSlice("custom")},
	}

	var (
		docs []*schema.Document
		top    archive.Source
		origin common.Origin
	)
	for _, l := range layers {
		for _, src := range l.srcs {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, s, err := loadDocument(src, l.origin, env, log)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			// result is named after the theme when there is one
			if len(docs) == 1 || l.origin == common.OriginTheme {
				top, origin = s, l.origin
			}
		}
	}
	if len(docs) == 0 {
		return errors.New("no input documents have been specified")
	}

	log.Info("Processing starting", zap.Int("documents", len(docs)), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := compiler.Compile(docs, env.Blocks, compileOptions(&env.Cfg.Compiler), log)
	if err != nil {
		return fmt.Errorf("unable to compile: %w", err)
	}
	for _, p := range res.Dropped {
		log.Debug("Dropped by sanitizer", zap.String("path", p))
	}

	values := newValues(top.Stem(), origin.String(), "css", env.RunID.String(), time.Now())
	outputName := buildOutputPath(values, dst, ".css", env)
	if err := writeOutput(outputName, []byte(res.CSS), env, log); err != nil {
		return err
	}
	log.Info("Stylesheet written", zap.String("to", outputName), zap.Int("size", len(res.CSS)))
	env.Rpt.Store("result/"+filepath.Base(outputName), outputName)

	if cmd.Bool("tree") {
		var buf bytes.Buffer
		if err := tree.EncodeJSON(&buf, res.Tree); err != nil {
			return fmt.Errorf("unable to encode resolved tree: %w", err)
		}
		treeName := strings.TrimSuffix(outputName, ".css") + ".json"
		if err := writeOutput(treeName, buf.Bytes(), env, log); err != nil {
			return err
		}
		log.Info("Resolved tree written", zap.String("to", treeName))
	}

	if env.Rpt != nil {
		env.Rpt.StoreData("debug/merged.txt", []byte(debug.Dump(res.Merged.Data, true)))
		env.Rpt.StoreData("debug/resolved.txt", []byte(debug.Dump(res.Tree, true)))
		env.Rpt.StoreData("debug/dropped.txt", []byte(strings.Join(res.Dropped, "\n")))
	}
	return nil
}

// Migrate upgrades single document to the latest schema version.
func Migrate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("migrate")

	env.Overwrite = env.Cfg.Output.Overwrite || cmd.Bool("overwrite")
	selectCodePage(cmd.String("force-zip-cp"), env, log)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	dst, err := destination(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	origin, err := common.ParseOrigin(cmd.String("origin"))
	if err != nil {
		return fmt.Errorf("unknown origin: %w", err)
	}

	doc, s, err := loadDocument(src, origin, env, log)
	if err != nil {
		return err
	}

	format := common.FormatFromExt(s.Ext())
	if to := cmd.String("to"); len(to) > 0 {
		if format, err = common.ParseFormat(to); err != nil {
			return fmt.Errorf("unknown output format: %w", err)
		}
	}

	migrated, err := schema.Migrate(doc)
	if err != nil {
		return fmt.Errorf("unable to migrate %s: %w", s, err)
	}
	log.Info("Document migrated", zap.Stringer("source", s), zap.Int("from", doc.Version), zap.Int("to", migrated.Version))

	data, err := encodeValue(migrated.Data, format)
	if err != nil {
		return err
	}

	values := newValues(s.Stem(), origin.String(), format.String(), env.RunID.String(), time.Now())
	outputName := buildOutputPath(values, dst, "."+format.String(), env)
	if err := writeOutput(outputName, data, env, log); err != nil {
		return err
	}
	log.Info("Migrated document written", zap.String("to", outputName))
	env.Rpt.Store("result/"+filepath.Base(outputName), outputName)
	return nil
}

// Spacing prints spacing sizes generated from scale described by flags.
// Invalid scale is not an error, it produces empty list.
func Spacing(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("spacing")

	scale := spacing.Scale{
		Operator:   cmd.String("operator"),
		Increment:  cmd.Float("increment"),
		Steps:      cmd.Float("steps"),
		MediumStep: cmd.Float("medium"),
		Unit:       cmd.String("unit"),
	}
	if err := scale.Validate(); err != nil {
		log.Warn("Spacing scale is not valid, no sizes generated", zap.Error(err))
	}

	format, err := common.ParseFormat(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("unknown output format: %w", err)
	}

	sizes := spacing.Generate(scale)
	items := make([]tree.Value, 0, len(sizes))
	for _, s := range sizes {
		items = append(items, s.Value())
	}
	data, err := encodeValue(tree.List(items...), format)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if fname := cmd.Args().Get(0); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write spacing sizes: %w", err)
	}
	return nil
}

// applyCompilerFlags puts explicitly specified command line values on top of
// configuration.
func applyCompilerFlags(cmd *cli.Command, conf *config.CompilerConfig) {
	if cmd.IsSet("types") {
		conf.Types = nil
		for t := range strings.SplitSeq(cmd.String("types"), ",") {
			if t = strings.TrimSpace(t); len(t) > 0 {
				conf.Types = append(conf.Types, t)
			}
		}
	}
	if cmd.IsSet("namespace") {
		conf.Namespace = cmd.String("namespace")
	}
	if cmd.IsSet("scope") {
		conf.ScopeSelector = cmd.String("scope")
	}
	if cmd.IsSet("root") {
		conf.RootSelector = cmd.String("root")
	}
	if cmd.IsSet("blocks") {
		conf.BlocksPath = cmd.String("blocks")
	}
	conf.AllowRawCSS = conf.AllowRawCSS || cmd.Bool("allow-css")
	conf.SkipRootLayout = conf.SkipRootLayout || cmd.Bool("skip-root-layout")
}

func compileOptions(conf *config.CompilerConfig) compiler.Options {
	return compiler.Options{
		AllowRawCSS: conf.AllowRawCSS,
		Stylesheet: stylesheet.Options{
			Types:                conf.Types,
			RootSelector:         conf.RootSelector,
			SkipRootLayoutStyles: conf.SkipRootLayout,
			ScopeSelector:        conf.ScopeSelector,
			IncludeVariations:    conf.IncludeVariations,
			Namespace:            conf.Namespace,
		},
	}
}

// Since zip "standard" does not define file name encoding we may need to
// force archaic code page for old archives.
func selectCodePage(cp string, env *state.LocalEnv, log *zap.Logger) {
	if len(cp) == 0 {
		return
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		env.CodePage = nil
		return
	}
	env.CodePage = enc
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
}

func destination(dst string) (string, error) {
	var err error
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	return filepath.Abs(dst)
}

// loadDocument reads single document of the given origin, src is either path
// to a file or path to a file inside zip archive.
func loadDocument(src string, origin common.Origin, env *state.LocalEnv, log *zap.Logger) (*schema.Document, archive.Source, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, archive.Source{}, err
	}
	s, err := archive.Locate(abs)
	if err != nil {
		return nil, archive.Source{}, err
	}

	r, err := s.Open(env.CodePage)
	if err != nil {
		return nil, s, fmt.Errorf("unable to open %s document: %w", origin, err)
	}
	defer r.Close()

	doc, err := schema.Load(r, common.FormatFromExt(s.Ext()), origin)
	if err != nil {
		return nil, s, fmt.Errorf("unable to load (%s): %w", s, err)
	}
	log.Debug("Document loaded", zap.Stringer("source", s), zap.Stringer("origin", origin), zap.Int("version", doc.Version))

	if env.Rpt != nil {
		var buf bytes.Buffer
		if err := tree.EncodeJSON(&buf, doc.Data); err == nil {
			env.Rpt.StoreData(fmt.Sprintf("input/%s-%s.json", origin, s.Stem()), buf.Bytes())
		}
	}
	return doc, s, nil
}

func encodeValue(v tree.Value, format common.Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case common.FormatYaml:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("unable to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("unable to encode yaml: %w", err)
		}
	default:
		if err := tree.EncodeJSON(&buf, v); err != nil {
			return nil, fmt.Errorf("unable to encode json: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// writeOutput refuses to replace existing files unless overwrite was
// requested.
func writeOutput(name string, data []byte, env *state.LocalEnv, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}
