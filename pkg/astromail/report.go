package astromail

import (
	"fmt"
	"strings"
	"time"

	"github.com/Asteroidea-tn/astrombr/pkg/astrocaliper"
	"github.com/Asteroidea-tn/astrombr/pkg/astrogeom"
)

// Entry is one computed rectangle, or the error that prevented it.
type Entry struct {
	Name   string
	Points []astrogeom.Point
	Rect   astrocaliper.Rectangle
	// Bounds is the axis-aligned box of Points, for comparison with Rect.
	Bounds astrogeom.Box
	Err    error
}

// Report groups the entries of one run.
type Report struct {
	Title     string
	Generated time.Time
	Entries   []Entry
}

// Failed counts the entries that carry an error.
func (r Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Subject is the mail subject line for the report.
func (r Report) Subject() string {
	s := fmt.Sprintf("%s: %d rectangles", r.Title, len(r.Entries)-r.Failed())
	if f := r.Failed(); f > 0 {
		s += fmt.Sprintf(", %d failed", f)
	}
	return s
}

// Text renders the report as plain text, one block per entry.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "generated %s\n", r.Generated.Format("2006-01-02 15:04:05"))

	for _, e := range r.Entries {
		fmt.Fprintf(&b, "\n[%s] %d points\n", e.Name, len(e.Points))
		if e.Err != nil {
			fmt.Fprintf(&b, "  error:  %v\n", e.Err)
			continue
		}
		fmt.Fprintf(&b, "  area:   %.6f\n", e.Rect.Area)
		fmt.Fprintf(&b, "  width:  %.6f\n", e.Rect.Width)
		fmt.Fprintf(&b, "  height: %.6f\n", e.Rect.Height)
		fmt.Fprintf(&b, "  axis-aligned area: %.6f\n", e.Bounds.Area())
		if e.Rect.Stop != astrocaliper.StopComplete {
			fmt.Fprintf(&b, "  sweep stopped early: %s\n", e.Rect.Stop)
		}
		b.WriteString("  corners:")
		for _, c := range e.Rect.Vertices {
			if !c.OK {
				b.WriteString(" missing")
				continue
			}
			fmt.Fprintf(&b, " (%.5f,%.5f)", c.X, c.Y)
		}
		b.WriteString("\n")
	}
	return b.String()
}
