package handlers

import (
	"encoding/json"
	"net/http"
	"seo_meta_audit/internal/adaptors"
	"seo_meta_audit/internal/domain/models"
	"seo_meta_audit/internal/service"

	log "github.com/sirupsen/logrus"
)

// maxTableBytes bounds the CSV table accepted in one request.
const maxTableBytes = 1 << 20

type AuditHandler struct {
	auditor *service.Auditor
	log     *log.Logger
}

type AuditResponse struct {
	OK       bool     `json:"ok"`
	Messages []string `json:"messages"`
	*models.AuditReport
}

func NewAuditHandler(auditor *service.Auditor, log *log.Logger) *AuditHandler {
	return &AuditHandler{
		auditor: auditor,
		log:     log,
	}
}

// Handle audits the CSV table sent as the request body. The table has the
// same layout as the input file, header first.
func (h *AuditHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug(`audit handler called`)

	rows, err := adaptors.NewCSVRowSource(http.MaxBytesReader(w, r.Body, maxTableBytes), h.log).Rows()
	if err != nil {
		sendError(w, r, h.log, `failed to read audit table`, err, http.StatusBadRequest)
		return
	}

	report, err := h.auditor.Audit(r.Context(), rows)
	if err != nil {
		sendError(w, r, h.log, `failed to audit pages`, err, statusFor(err))
		return
	}

	response := AuditResponse{
		OK:          report.OK(),
		Messages:    service.Messages(report),
		AuditReport: report,
	}

	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}
