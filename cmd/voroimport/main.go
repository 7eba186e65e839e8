// Command voroimport loads a particle text file into a voro2d.Container,
// reconciles any parallel overflow, and reports block occupancy.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/haldane-labs/voro2d"
	"github.com/haldane-labs/voro2d/config"
	"github.com/haldane-labs/voro2d/internal/logx"
	"github.com/haldane-labs/voro2d/telemetry"
)

// importSafely runs Container.Import, translating the container's fatal
// memory-exhaustion panic into the documented exit code instead of letting
// it crash out with a bare stack trace.
func importSafely(c *voro2d.Container, r io.Reader) {
	defer func() {
		if rec := recover(); rec != nil {
			logx.Fatalf(voro2d.ExitCodeMemoryExhausted, "import failed", "error", rec)
		}
	}()

	if err := c.Import(r); err != nil {
		if errors.Is(err, voro2d.ErrImportParse) {
			logx.Fatalf(voro2d.ExitCodeImportError, "malformed import record", "error", err)
		}
		logx.Fatalf(voro2d.ExitCodeMemoryExhausted, "import failed", "error", err)
	}
}

func main() {
	configPath := flag.String("config", "", "config YAML file (empty = use defaults)")
	inputPath := flag.String("input", "", "particle text file to import (required)")
	outputDir := flag.String("output", "", "directory to write an occupancy snapshot to (optional)")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "voroimport: --input is required")
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		logx.Fatalf(voro2d.ExitCodeImportError, "loading config", "error", err)
	}
	cfg := config.Cfg()

	c, err := voro2d.New(cfg.ToContainerConfig())
	if err != nil {
		logx.Fatalf(voro2d.ExitCodeImportError, "building container", "error", err)
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		logx.Fatalf(voro2d.ExitCodeImportError, "opening input", "path", *inputPath, "error", err)
	}
	defer f.Close()

	importSafely(c, f)

	var col telemetry.Collector
	col.NoteReconcile()
	snap := col.Snapshot(0, c)
	snap.LogSnapshot()

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		logx.Fatalf(voro2d.ExitCodeImportError, "creating output directory", "error", err)
	}
	if om != nil {
		if err := om.WriteSnapshot(snap); err != nil {
			logx.Fatalf(voro2d.ExitCodeImportError, "writing snapshot", "error", err)
		}
		if err := om.Close(); err != nil {
			logx.Fatalf(voro2d.ExitCodeImportError, "closing output", "error", err)
		}
		fmt.Printf("wrote snapshot to %s\n", om.Dir())
	}
}
