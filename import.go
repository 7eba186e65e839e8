package voro2d

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrImportParse is returned by Import when a line cannot be parsed as a
// complete record before EOF. voro2d itself never terminates the process;
// translating this into a distinct-exit-code fatal error is the cmd/
// binaries' job (see internal/logx.Fatalf and ExitCodeImportError).
var ErrImportParse = errors.New("voro2d: import: malformed record")

// Import reads whitespace-separated records, one per line, of the form
// "id x y" (plain variant) or "id x y r" (radius variant), calling Put for
// each. It always calls PutReconcileOverflow before returning — Put itself
// never touches the overflow buffer, so this is a no-op unless the caller
// had a PutParallel batch pending, in which case it quietly does the right
// thing instead of leaving a footgun (see DESIGN.md).
func (c *Container) Import(r io.Reader) error {
	defer c.PutReconcileOverflow()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var id int
		var x, y, rad float64
		var n int
		var err error
		if c.cfg.Radius {
			n, err = fmt.Sscan(text, &id, &x, &y, &rad)
			if err == nil && n != 4 {
				err = fmt.Errorf("expected 4 fields, got %d", n)
			}
		} else {
			n, err = fmt.Sscan(text, &id, &x, &y)
			if err == nil && n != 3 {
				err = fmt.Errorf("expected 3 fields, got %d", n)
			}
		}
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrImportParse, line, err)
		}

		if c.cfg.Radius {
			c.Put(id, x, y, rad)
		} else {
			c.Put(id, x, y)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrImportParse, line, err)
	}

	return nil
}
