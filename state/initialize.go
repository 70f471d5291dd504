package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"themec/common"
	"themec/registry"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		RunID: uuid.New(),
	}
}

// PrepareBlocks sets block registry: definitions from the configured file
// when there is one, built-in core blocks otherwise.
func (e *LocalEnv) PrepareBlocks() error {
	if e.Blocks != nil {
		return nil
	}
	if e.Cfg == nil || len(e.Cfg.Compiler.BlocksPath) == 0 {
		core, err := registry.Core()
		if err != nil {
			return fmt.Errorf("unable to load core blocks: %w", err)
		}
		e.Blocks = core
		return nil
	}

	path := e.Cfg.Compiler.BlocksPath
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open block definitions: %w", err)
	}
	defer f.Close()

	reg, err := registry.Load(f, common.FormatFromExt(filepath.Ext(path)))
	if err != nil {
		return fmt.Errorf("unable to load block definitions (%s): %w", path, err)
	}
	e.Blocks = reg
	e.Rpt.Store("input/blocks"+filepath.Ext(path), path)
	return nil
}
