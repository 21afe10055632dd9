// Package debug provides env-var-gated diagnostic logging, grounded on the
// teacher's package-level DebugTiming/DebugFullRedraw/DebugFlush flags:
// zero cost when disabled, a plain stderr line when enabled.
package debug

import (
	"fmt"
	"os"
	"time"
)

var (
	// Timing gates logging of per-frame render/layout/flush durations.
	// Enabled by setting VLIST_DEBUG_TIMING.
	Timing bool
	// FullRedraw forces a full re-render every frame instead of the
	// diff-based enter/leave path, for isolating rendering bugs from
	// diffing bugs. Enabled by setting VLIST_FULL_REDRAW.
	FullRedraw bool
	// Flush gates logging of composited-frame flush details. Enabled by
	// setting VLIST_DEBUG_FLUSH.
	Flush bool
)

func init() {
	if os.Getenv("VLIST_DEBUG_TIMING") != "" {
		Timing = true
	}
	if os.Getenv("VLIST_FULL_REDRAW") != "" {
		FullRedraw = true
	}
	if os.Getenv("VLIST_DEBUG_FLUSH") != "" {
		Flush = true
	}
}

// Logf writes a formatted diagnostic line to stderr. Callers gate calls
// behind one of the package flags; Logf itself does not check them so it
// can also be used for error conditions that should always surface (e.g.
// template panics, adapter failures).
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vlist: "+format+"\n", args...)
}

// Since logs elapsed time for a named phase when Timing is enabled; call
// as `defer debug.Since("render", time.Now())`.
func Since(phase string, start time.Time) {
	if !Timing {
		return
	}
	Logf("%s took %s", phase, time.Since(start))
}
