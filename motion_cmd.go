package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/config"
	"github.com/hemantsolanki/portfolio/internal/dom"
	"github.com/hemantsolanki/portfolio/internal/store"
	"github.com/hemantsolanki/portfolio/internal/widgets"
)

var (
	motionFormat string
	motionCheck  bool
	motionPage   string
)

var motionCmd = &cobra.Command{
	Use:   "motion",
	Short: "Print the page's motion setup and simulate it against the rendered page",
	Long: `Prints the configuration the browser script animates the page with. With
--check the index page is rendered (or --page is read), every behavior is
mounted on it with a virtual clock and the command reports selectors that
match nothing and how long the loader, typing banner and backdrop take.`,
	RunE: runMotion,
}

func init() {
	motionCmd.Flags().StringVar(&motionFormat, "format", "yaml", "output format: yaml or json")
	motionCmd.Flags().BoolVar(&motionCheck, "check", false, "simulate the page and report unmatched selectors")
	motionCmd.Flags().StringVar(&motionPage, "page", "", "HTML file to check instead of the rendered index")
	rootCmd.AddCommand(motionCmd)
}

func runMotion(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	db, err := store.OpenMemory()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := newSite(cfg, db, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writePageConfig(out, s.page, motionFormat); err != nil {
		return err
	}
	if !motionCheck {
		return nil
	}

	markup, err := pageMarkup(s, motionPage)
	if err != nil {
		return err
	}
	report, err := simulatePage(markup, s.page)
	if err != nil {
		return err
	}
	report.print(out)
	if len(report.Unmatched) > 0 {
		return fmt.Errorf("%d selectors match nothing", len(report.Unmatched))
	}
	return nil
}

func writePageConfig(w io.Writer, page widgets.Config, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(page)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	default:
		return fmt.Errorf("unknown format %q: must be yaml or json", format)
	}
}

// pageMarkup reads path, or renders the index page through the router.
func pageMarkup(s *site, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading page: %w", err)
		}
		return data, nil
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	s.router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return nil, fmt.Errorf("rendering index: status %d", rec.Code)
	}
	return rec.Body.Bytes(), nil
}

type simulationReport struct {
	Unmatched        []string
	FailsafeHiddenAt time.Duration
	LoadedHiddenAt   time.Duration
	TypingDoneAt     time.Duration
	BackdropFrames   int
	BackdropPoints   int
	BackdropVisible  int
	Counters         int
}

// simulatePage mounts page twice on fresh documents parsed from markup:
// once without a load signal to exercise the failsafe, once with the load
// signal at time zero.
func simulatePage(markup []byte, page widgets.Config) (*simulationReport, error) {
	r := &simulationReport{}

	doc, err := dom.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, err
	}
	sched := clock.New()
	p, err := widgets.Mount(doc, sched, page, widgets.Platform{})
	if err != nil {
		return nil, err
	}
	r.Unmatched = p.Engine.Unmatched(page.Motion)
	sched.Advance(time.Duration(page.LoadGate.FailsafeMS+page.LoadGate.FadeMS) * time.Millisecond)
	r.FailsafeHiddenAt = p.Gate.OverlayHiddenAt()
	p.Close()

	doc, err = dom.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, err
	}
	sched = clock.New()
	stats := &widgets.FrameStats{}
	p, err = widgets.Mount(doc, sched, page, widgets.Platform{Renderer: stats, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		return nil, err
	}
	defer p.Close()
	doc.FireLoad()
	r.LoadedHiddenAt = p.Gate.OverlayHiddenAt()
	for i := 0; i < 600 && !p.Typer.Done(); i++ {
		sched.Advance(100 * time.Millisecond)
		if r.LoadedHiddenAt < 0 {
			r.LoadedHiddenAt = p.Gate.OverlayHiddenAt()
		}
	}
	if p.Typer.Done() {
		r.TypingDoneAt = sched.Now()
	} else {
		r.TypingDoneAt = -1
	}
	if p.Backdrop != nil {
		r.BackdropFrames = stats.Frames
		r.BackdropPoints = len(p.Backdrop.Points())
		r.BackdropVisible = stats.Visible
	}
	r.Counters = len(p.Engine.Counters())
	return r, nil
}

func (r *simulationReport) print(w io.Writer) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "loader hidden without load event: %v\n", r.FailsafeHiddenAt)
	fmt.Fprintf(w, "loader hidden with load at 0s:    %v\n", r.LoadedHiddenAt)
	if r.TypingDoneAt >= 0 {
		fmt.Fprintf(w, "terminal banner finished:         %v\n", r.TypingDoneAt)
	} else {
		fmt.Fprintln(w, "terminal banner finished:         never (no target?)")
	}
	fmt.Fprintf(w, "backdrop: %d points, %d on screen, %d frames\n", r.BackdropPoints, r.BackdropVisible, r.BackdropFrames)
	fmt.Fprintf(w, "counters: %d\n", r.Counters)
	for _, u := range r.Unmatched {
		fmt.Fprintf(w, "unmatched %s\n", u)
	}
}
