package diagnostic

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Render formats err as a single line carrying its stable code and
// message, the code colorized the way cmd/ailang/main.go colorizes its
// own status lines. It returns a string; it never writes to a stream,
// so pipeline callers stay free to log, test-assert, or discard it
// (spec.md §1/§5 — the core has no I/O of its own).
func Render(err error) string {
	if err == nil {
		return ""
	}
	code := CodeOf(err)
	if code == UNK000 {
		return fmt.Sprintf("%s %s", yellow("[error]"), err.Error())
	}
	return fmt.Sprintf("%s %s", red("["+string(code)+"]"), err.Error())
}
