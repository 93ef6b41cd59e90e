// Package display renders playback steps to a terminal in place.
package display

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-geo-replay/internal/core/model"
	"github.com/penwyp/go-geo-replay/internal/data/aggregator"
	"github.com/penwyp/go-geo-replay/internal/presentation/marker"
	"github.com/penwyp/go-geo-replay/internal/util"
	"golang.org/x/term"
)

const (
	clearScreen    = "\033[2J"
	moveCursorHome = "\033[H"
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	altScreenOn    = "\033[?1049h"
	altScreenOff   = "\033[?1049l"
)

// Config tunes the live view.
type Config struct {
	TopN        int
	Breakpoints marker.Breakpoints
	// Width overrides terminal size detection; zero means autodetect.
	Width int
}

// TerminalDisplay is a StepSink that keeps its own copy of the visible set,
// updated incrementally from each step's diff, and redraws the full frame.
type TerminalDisplay struct {
	mu     sync.Mutex
	w      io.Writer
	config Config

	active      map[string]model.TimedRecord
	boundary    *model.BoundaryInfo
	bucketCount int

	inAlternateScreen bool
}

func NewTerminalDisplay(w io.Writer, config Config) *TerminalDisplay {
	if config.TopN <= 0 {
		config.TopN = 10
	}
	if config.Breakpoints.XLarge.IsZero() {
		config.Breakpoints = marker.DefaultBreakpoints()
	}
	return &TerminalDisplay{
		w:      w,
		config: config,
		active: make(map[string]model.TimedRecord),
	}
}

// SetBoundary records the basemap metadata shown in the header.
func (td *TerminalDisplay) SetBoundary(info *model.BoundaryInfo) {
	td.mu.Lock()
	defer td.mu.Unlock()
	td.boundary = info
}

// SetBucketCount sizes the progress indicator.
func (td *TerminalDisplay) SetBucketCount(n int) {
	td.mu.Lock()
	defer td.mu.Unlock()
	td.bucketCount = n
}

// Reset drops the active set, for timeline rebuilds after a data reload.
func (td *TerminalDisplay) Reset() {
	td.mu.Lock()
	defer td.mu.Unlock()
	td.active = make(map[string]model.TimedRecord)
}

// EnterAlternateScreen switches to the alternate buffer so playback does not
// scroll the user's shell history.
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if !td.inAlternateScreen {
		fmt.Fprint(td.w, altScreenOn, clearScreen, moveCursorHome, hideCursor)
		td.inAlternateScreen = true
	}
}

// ExitAlternateScreen restores the normal buffer.
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.inAlternateScreen {
		fmt.Fprint(td.w, clearScreen, moveCursorHome, showCursor, altScreenOff)
		td.inAlternateScreen = false
	}
}

// OnStep applies the step's diff to the active set and redraws the frame.
func (td *TerminalDisplay) OnStep(update model.StepUpdate) {
	td.mu.Lock()
	defer td.mu.Unlock()

	for _, id := range update.Leaving {
		delete(td.active, id)
	}
	for _, rec := range update.EnteringRecords {
		td.active[rec.ID] = rec
	}

	td.render(update)
}

func (td *TerminalDisplay) render(update model.StepUpdate) {
	if td.inAlternateScreen {
		fmt.Fprint(td.w, moveCursorHome)
	}

	width := td.frameWidth()
	rule := strings.Repeat("═", width)

	fmt.Fprintln(td.w, rule)
	title := "Geo Replay"
	if td.boundary != nil && td.boundary.Name != "" {
		title = fmt.Sprintf("Geo Replay — %s", td.boundary.Name)
	}
	fmt.Fprintln(td.w, centerText(title, width))
	fmt.Fprintln(td.w, rule)

	fmt.Fprintf(td.w, "  %s%s\n", update.BucketLabel, td.progressSuffix(update.Index))
	fmt.Fprintf(td.w, "  Executed: %s  (%s)\n",
		util.FormatEuro(update.CumulativeTotal),
		util.FormatEuroFull(update.CumulativeTotal))
	fmt.Fprintf(td.w, "  Visible:  %s   +%s new   -%s gone\n",
		util.FormatCount(update.VisibleCount),
		util.FormatCount(len(update.Entering)),
		util.FormatCount(len(update.Leaving)))
	fmt.Fprintln(td.w)

	td.renderTiers()
	td.renderRanking()

	fmt.Fprintln(td.w, strings.Repeat("─", width))
	if td.inAlternateScreen {
		// Clear from cursor to end so shrinking frames leave no residue.
		fmt.Fprint(td.w, "\033[J")
	}
}

// progressSuffix renders "[3/14]" after the bucket label.
func (td *TerminalDisplay) progressSuffix(index int) string {
	if td.bucketCount == 0 {
		return ""
	}
	return fmt.Sprintf("  [%d/%d]", index+1, td.bucketCount)
}

func (td *TerminalDisplay) renderTiers() {
	counts := map[string]int{}
	for _, rec := range td.active {
		counts[marker.TierFor(rec.Magnitude, td.config.Breakpoints).Name]++
	}
	fmt.Fprintf(td.w, "  Markers:  s=%d  m=%d  l=%d  xl=%d\n",
		counts["s"], counts["m"], counts["l"], counts["xl"])
	fmt.Fprintln(td.w)
}

func (td *TerminalDisplay) renderRanking() {
	records := make([]model.TimedRecord, 0, len(td.active))
	for _, rec := range td.active {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	ranking := aggregator.TopCategories(records, td.config.TopN)
	if len(ranking) == 0 {
		return
	}

	fmt.Fprintln(td.w, "  Top Titulares:")
	for i, r := range ranking {
		fmt.Fprintf(td.w, "  %2d. %-36s %s\n", i+1, r.Category, util.FormatCount(r.Count))
	}
	fmt.Fprintln(td.w)
}

func (td *TerminalDisplay) frameWidth() int {
	if td.config.Width > 0 {
		return td.config.Width
	}
	if f, ok := td.w.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
			return w
		}
	}
	return 80
}

func centerText(text string, width int) string {
	pad := (width - runewidth.StringWidth(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
