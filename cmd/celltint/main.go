// celltint - colour contrast tooling for terminal text rendering
//
// celltint converts, composites and contrast-adjusts the colours of a
// character-cell surface and renders cell grids to PNG.
package main

import (
	"github.com/jmylchreest/celltint/internal/cli"
)

func main() {
	cli.Execute()
}
