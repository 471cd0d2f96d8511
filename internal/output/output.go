// Package output carries the stdout printer for githooks commands.
//
// Stdout holds what a user might pipe or parse: tables, shim paths, config.
// Diagnostics belong on stderr through the log package.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
)

type ctxKey struct{}

// Printer writes primary output.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w as is.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Downsample wraps w so styled text is reduced to the colors the destination
// supports, given the process environment. A pipe or file gets no escape
// codes at all. plain forces ASCII even on a color terminal.
func Downsample(w io.Writer, environ []string, plain bool) *colorprofile.Writer {
	pw := colorprofile.NewWriter(w, environ)
	if plain && pw.Profile > colorprofile.ASCII {
		pw.Profile = colorprofile.ASCII
	}
	return pw
}

// WithPrinter attaches a Printer for w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext returns the attached Printer, or one writing to os.Stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Table writes rows under a bold header. Nothing is written when rows is empty.
func (p *Printer) Table(headers []string, rows [][]string) {
	fmt.Fprint(p.w, RenderTable(headers, rows))
}

// Writer returns the destination, for encoders that need an io.Writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// RenderTable lays rows out in borderless columns sized to their content.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cell := lipgloss.NewStyle().PaddingRight(2)
	header := cell.Bold(true)

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	return t.String() + "\n"
}
