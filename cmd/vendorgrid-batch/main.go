// Command vendorgrid-batch generates vendor-access exports from files.
package main

import (
	"os"

	"github.com/dalemusser/vendorgrid/internal/batch"
)

func main() {
	os.Exit(batch.Run("vendorgrid-batch", os.Args[1:], batch.StdIO()))
}
