package registry

import (
	"bytes"
	_ "embed"
	"sync"

	"themec/common"
)

//go:embed core-blocks.yaml
var coreBlocks []byte

var core = sync.OnceValues(func() (*Static, error) {
	return Load(bytes.NewReader(coreBlocks), common.FormatYaml)
})

// Core returns registry of built-in blocks. It is loaded once and shared.
func Core() (*Static, error) {
	return core()
}
