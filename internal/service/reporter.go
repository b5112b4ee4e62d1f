package service

import (
	"bufio"
	"fmt"
	"io"
	"seo_meta_audit/internal/domain/models"
	"seo_meta_audit/internal/pkg/errors"
)

const okMessage = `Everything OK!`

// Reporter prints an audit report as preformatted text.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) Write(report *models.AuditReport) error {
	w := bufio.NewWriter(r.out)
	fmt.Fprintln(w, `<pre>`)
	for _, line := range Messages(report) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, `</pre>`)

	if err := w.Flush(); err != nil {
		return errors.Wrap(err, `failed to write report`)
	}
	return nil
}

// Messages renders the report as indexed lines, mismatches first, or the
// single success line when there is nothing to report.
func Messages(report *models.AuditReport) []string {
	if report.OK() {
		return []string{okMessage}
	}

	lines := make([]string, 0, len(report.Mismatches)+len(report.RowErrors))
	for _, m := range report.Mismatches {
		lines = append(lines, fmt.Sprintf(`[%d] %s`, len(lines), m.Message()))
	}
	for _, e := range report.RowErrors {
		lines = append(lines, fmt.Sprintf(`[%d] %s`, len(lines), e.Message()))
	}
	return lines
}
