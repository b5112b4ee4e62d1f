package runner

import (
	"context"
	"io"
	"seo_meta_audit/internal/adaptors"
	"seo_meta_audit/internal/application/config"
	domain "seo_meta_audit/internal/domain/adaptors"
	"seo_meta_audit/internal/pkg/errors"
	"seo_meta_audit/internal/pkg/metrics"
	"seo_meta_audit/internal/service"

	log "github.com/sirupsen/logrus"
)

// Runner performs one audit of the configured CSV table and prints the
// report.
type Runner struct {
	log         *log.Logger
	rows        domain.RowSource
	auditor     *service.Auditor
	reporter    *service.Reporter
	metricsFile string
}

func New(log *log.Logger, cfg *config.AppConfig, out io.Writer) *Runner {
	return NewWithClient(log, cfg, out, adaptors.NewWebClient(cfg.FetchTimeout, log))
}

func NewWithClient(log *log.Logger, cfg *config.AppConfig, out io.Writer, webClient domain.WebClient) *Runner {
	return &Runner{
		log:         log,
		rows:        adaptors.NewCSVFileRowSource(cfg.InputFile, log),
		auditor:     service.NewAuditor(log, webClient, cfg.IsolateRowErrors),
		reporter:    service.NewReporter(out),
		metricsFile: cfg.MetricsFile,
	}
}

// Run loads every row before the first request is made, so a missing or
// malformed table fails without any network activity.
func (r *Runner) Run(ctx context.Context) error {
	rows, err := r.rows.Rows()
	if err != nil {
		return errors.Wrap(err, `failed to load rows`)
	}

	report, err := r.auditor.Audit(ctx, rows)
	if err != nil {
		return err
	}

	if err := r.reporter.Write(report); err != nil {
		return err
	}

	if r.metricsFile != "" {
		if err := metrics.WriteTextfile(r.metricsFile); err != nil {
			r.log.WithError(err).Warn(`failed to write metrics file`)
		}
	}
	return nil
}
