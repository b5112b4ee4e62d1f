package service

import (
	"context"
	"fmt"
	"time"
	"seo_meta_audit/internal/domain/adaptors"
	"seo_meta_audit/internal/domain/models"
	"seo_meta_audit/internal/pkg/errors"
	"seo_meta_audit/internal/pkg/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Auditor compares the live title and description of each row's page with
// the row's expectations. Rows are processed one at a time, in order.
type Auditor struct {
	log             *log.Logger
	webClient       adaptors.WebClient
	isolateRowError bool
}

// NewAuditor returns an Auditor. With isolateRowErrors unset the first row
// that cannot be fetched or parsed aborts the audit; otherwise the failure
// is recorded in the report and the audit moves on.
func NewAuditor(log *log.Logger, webClient adaptors.WebClient, isolateRowErrors bool) *Auditor {
	return &Auditor{
		log:             log,
		webClient:       webClient,
		isolateRowError: isolateRowErrors,
	}
}

func (a *Auditor) Audit(ctx context.Context, rows []models.Row) (*models.AuditReport, error) {
	report := &models.AuditReport{
		RunID:      uuid.NewString(),
		Rows:       len(rows),
		Mismatches: []models.Mismatch{},
		RowErrors:  []models.RowError{},
	}
	logger := a.log.WithField(`run_id`, report.RunID)
	logger.WithField(`rows`, len(rows)).Info(`audit started`)

	start := time.Now()
	defer func() {
		metrics.AuditRunDuration.Observe(time.Since(start).Seconds())
	}()

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, `audit cancelled`)
		}

		rowLog := logger.WithFields(log.Fields{`url`: row.URL, `line`: row.Line})
		mismatches, err := a.auditRow(ctx, row)
		if err != nil {
			metrics.AuditRowsTotal.WithLabelValues(metrics.RowResultError).Inc()
			if !a.isolateRowError {
				rowLog.WithError(err).Error(`audit aborted`)
				return nil, errors.Wrap(err, fmt.Sprintf(`failed to audit line %d`, row.Line))
			}
			rowLog.WithError(err).Warn(`row skipped`)
			report.RowErrors = append(report.RowErrors, models.RowError{URL: row.URL, Line: row.Line, Err: err})
			continue
		}

		if len(mismatches) == 0 {
			metrics.AuditRowsTotal.WithLabelValues(metrics.RowResultOK).Inc()
			rowLog.Debug(`row matches`)
			continue
		}
		metrics.AuditRowsTotal.WithLabelValues(metrics.RowResultMismatch).Inc()
		for _, m := range mismatches {
			metrics.AuditMismatchesTotal.WithLabelValues(string(m.Field)).Inc()
			rowLog.WithField(`field`, m.Field).Info(`mismatch found`)
		}
		report.Mismatches = append(report.Mismatches, mismatches...)
	}

	logger.WithFields(log.Fields{
		`mismatches`: len(report.Mismatches),
		`row_errors`: len(report.RowErrors),
		`duration`:   time.Since(start).String(),
	}).Info(`audit completed`)
	return report, nil
}

func (a *Auditor) auditRow(ctx context.Context, row models.Row) ([]models.Mismatch, error) {
	page, _, err := a.webClient.Fetch(ctx, row.URL)
	if err != nil {
		return nil, err
	}

	title, err := ExtractTitle(page)
	if err != nil {
		return nil, errors.Wrap(err, `failed to get title`)
	}
	description, err := ExtractDescription(page)
	if err != nil {
		return nil, errors.Wrap(err, `failed to get description`)
	}

	var mismatches []models.Mismatch
	if title != row.ExpectedTitle {
		mismatches = append(mismatches, models.Mismatch{
			URL:      row.URL,
			Field:    models.FieldTitle,
			Actual:   title,
			Expected: row.ExpectedTitle,
		})
	}
	if description != row.ExpectedDescription {
		mismatches = append(mismatches, models.Mismatch{
			URL:      row.URL,
			Field:    models.FieldDescription,
			Actual:   description,
			Expected: row.ExpectedDescription,
		})
	}
	return mismatches, nil
}
