package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"themec/config"
	"themec/state"
)

// buildOutputPath returns constructed output file path/name. It uses either
// default naming scheme (name of the source document) or user-defined
// template, cleans up path and if requested transliterates it. Extension is
// always appended.
func buildOutputPath(values Values, dst, ext string, env *state.LocalEnv) string {
	defaultFile := buildDefaultFileName(values.Name, ext, env)

	if env.Cfg.Output.NameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(values, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}

	return assemblePathWithSubdirs(dst, expandedName, ext, env)
}

func buildDefaultFileName(name, ext string, env *state.LocalEnv) string {
	if env.Cfg.Output.NameTransliterate {
		name = slug.Make(name)
	}
	return config.CleanFileName(name) + ext
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Output.NameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(filepath.FromSlash(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName, ext string, env *state.LocalEnv) string {
	pathSegments := splitPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], env) + ext
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}

	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.NameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
