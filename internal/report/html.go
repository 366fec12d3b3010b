package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"phonediff/internal/render"
	"phonediff/internal/runner"
)

const pageStyle = `body{font-family:sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin-bottom:1.5rem}
td,th{padding:.2rem .6rem;text-align:left;border-bottom:1px solid #ddd}
.tokens td{font-family:monospace;border:none;padding:0 .3rem}
.light{background:#ffd75f}
.fatal{background:#ff0000;color:#fff;font-weight:bold}
.error{color:#b00}
.finding{margin:0 0 1rem 1rem}`

// ReportPage renders one run as a standalone HTML page.
func ReportPage(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		title := "phonediff " + results.RunID
		p.printf("<!doctype html>\n<html lang=\"ja\">\n<head>\n<meta charset=\"utf-8\" />\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n", esc(title), pageStyle)
		p.printf("<h1>%s</h1>\n", esc(title))
		p.printf("<p>%s vs %s, status %s</p>\n", esc(results.Pipelines.A.ID), esc(results.Pipelines.B.ID), esc(results.Status))
		writeCounters(p, "Total", results.Totals)

		p.printf("<table>\n<tr><th>File</th><th>Sentences</th><th>Matches</th><th>Light</th><th>Fatal</th><th>Errors</th></tr>\n")
		for _, f := range results.Files {
			if f.Status != runner.FileOK {
				p.printf("<tr><td>%s</td><td colspan=\"5\" class=\"error\">%s</td></tr>\n", esc(filepath.Base(f.Path)), esc(f.Error))
				continue
			}
			c := f.Counters
			p.printf("<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>\n",
				esc(filepath.Base(f.Path)), f.Sentences, c.Matches, c.Light, c.Fatal, c.Errors)
		}
		p.printf("</table>\n")

		for _, f := range results.Files {
			if len(f.Findings) == 0 {
				continue
			}
			p.printf("<h2>%s</h2>\n", esc(filepath.Base(f.Path)))
			for _, s := range f.Findings {
				writeFinding(p, results.Pipelines, f.Sentences, s)
			}
		}
		p.printf("</body>\n</html>\n")
		return p.err
	})
}

// IndexPage lists runs with links to their reports.
func IndexPage(runIDs []string, linkPrefix string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.printf("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\" />\n<title>phonediff runs</title>\n<style>%s</style>\n</head>\n<body>\n<h1>phonediff runs</h1>\n", pageStyle)
		if len(runIDs) == 0 {
			p.printf("<p>No runs yet.</p>\n")
		} else {
			p.printf("<ul>\n")
			for i := len(runIDs) - 1; i >= 0; i-- {
				id := runIDs[i]
				p.printf("<li><a href=\"%s\">%s</a></li>\n", esc(linkPrefix+id), esc(id))
			}
			p.printf("</ul>\n")
		}
		p.printf("</body>\n</html>\n")
		return p.err
	})
}

// RenderHTML renders the report for a run into a string.
func RenderHTML(ctx context.Context, results runner.Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteHTML renders the report for a run to path.
func WriteHTML(ctx context.Context, path string, results runner.Results) error {
	html, err := RenderHTML(ctx, results)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return os.WriteFile(path, []byte(html), 0o644)
}

func writeCounters(p *pageWriter, label string, c runner.Counters) {
	p.printf("<p><strong>%s:</strong> %s</p>\n", esc(label), esc(c.String()))
}

func writeFinding(p *pageWriter, pipelines runner.PipelinePair, total int, s runner.SentenceResult) {
	p.printf("<div class=\"finding\">\n<p>[%d / %d] %s: %s</p>\n", s.Index, total, esc(findingHeading(s)), esc(s.Text))
	if s.Outcome == runner.OutcomeError {
		p.printf("<p class=\"error\">%s: %s<br />%s: %s</p>\n</div>\n",
			esc(pipelines.A.ID), esc(orOK(s.ErrorA)), esc(pipelines.B.ID), esc(orOK(s.ErrorB)))
		return
	}
	if s.Verdict == nil {
		p.printf("</div>\n")
		return
	}
	rowA, rowB := render.Rows(s.A, s.B, *s.Verdict)
	p.printf("<table class=\"tokens\">\n")
	writeRow(p, pipelines.A.ID, rowA)
	writeRow(p, pipelines.B.ID, rowB)
	p.printf("</table>\n</div>\n")
}

func findingHeading(s runner.SentenceResult) string {
	switch s.Outcome {
	case runner.OutcomeLight:
		return "Light mismatch"
	case runner.OutcomeError:
		return "Error"
	}
	if s.Verdict != nil {
		if b, ok := s.Verdict.Boundary(); ok {
			return fmt.Sprintf("Fatal mismatch (length mismatch: A=%d, B=%d)", b.LenA, b.LenB)
		}
	}
	return "Fatal mismatch"
}

func writeRow(p *pageWriter, label string, row render.Row) {
	p.printf("<tr><th>%s</th>", esc(label))
	for _, span := range row {
		switch span.Emphasis {
		case render.Light:
			p.printf("<td class=\"light\">%s</td>", esc(span.Text))
		case render.Fatal:
			p.printf("<td class=\"fatal\">%s</td>", esc(span.Text))
		default:
			p.printf("<td>%s</td>", esc(span.Text))
		}
	}
	p.printf("</tr>\n")
}

func orOK(errText string) string {
	if errText == "" {
		return "ok"
	}
	return errText
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// pageWriter keeps the first write error so page code can print freely.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
