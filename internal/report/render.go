package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer renders validation reports to a terminal stream (normally stderr).
type Printer struct {
	Out io.Writer
	// Details prints every finding instead of the capped example lists.
	Details bool
}

// New returns a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{Out: out}
}

// Render prints the full report: header, per-category breakdown, verdict.
func (p *Printer) Render(r *Report) {
	p.header(r)
	p.breakdown(r)
	p.banner(r)
}

func (p *Printer) header(r *Report) {
	fmt.Fprintf(p.Out, bold+cyan+"crosslink"+reset+dim+" — relationship integrity report"+reset+"\n\n")
	fmt.Fprintf(p.Out, "  files:    %s\n", strings.Join(r.Files, ", "))

	domains := make([]string, 0, len(r.EntitiesLoaded))
	for d := range r.EntitiesLoaded {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	var parts []string
	for _, d := range domains {
		parts = append(parts, fmt.Sprintf("%s: %d", d, r.EntitiesLoaded[d]))
	}
	fmt.Fprintf(p.Out, "  entities: %d (%s)\n", r.EntitiesScanned, strings.Join(parts, ", "))
	fmt.Fprintf(p.Out, "  edges:    %d scanned, %d forward-verified\n\n", r.EdgesScanned, r.VerifiedForward)
}

func (p *Printer) breakdown(r *Report) {
	if len(r.Buckets) == 0 {
		fmt.Fprintln(p.Out, dim+"  no findings"+reset)
		fmt.Fprintln(p.Out)
		return
	}

	for _, b := range r.Buckets {
		color, label := yellow, "warning"
		if b.Severity == "error" {
			color, label = red, "error"
		}
		fmt.Fprintf(p.Out, color+bold+"  %s"+reset+dim+" (%s) — %d finding(s)"+reset+"\n", b.Category, label, b.Count)

		examples := b.Examples
		if p.Details {
			examples = nil
			for _, f := range r.Findings {
				if f.Category == b.Category {
					examples = append(examples, f)
				}
			}
		}
		for _, f := range examples {
			fmt.Fprintf(p.Out, "    "+color+"•"+reset+" %s\n", f.String())
		}
		if !p.Details && b.Count > len(b.Examples) {
			fmt.Fprintf(p.Out, dim+"    … %d more (use --details)"+reset+"\n", b.Count-len(b.Examples))
		}
	}
	fmt.Fprintln(p.Out)
}

func (p *Printer) banner(r *Report) {
	if r.Passed {
		fmt.Fprintf(p.Out, green+bold+"✓ PASS"+reset+" — %d warning(s), 0 errors\n", r.Warnings)
		return
	}
	fmt.Fprintf(p.Out, red+bold+"✗ FAIL"+reset+" — %d error(s), %d warning(s)\n", r.Errors, r.Warnings)
}

// Error prints a fatal message in the run's error style.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.Out, red+bold+"error: "+reset+"%s\n", msg)
}

// Info prints a dim informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.Out, dim+"%s"+reset+"\n", msg)
}
