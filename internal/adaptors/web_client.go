package adaptors

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"
	"seo_meta_audit/internal/pkg/errors"
	"seo_meta_audit/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// auditCookie is the only header the audit sets on outgoing requests.
const auditCookie = `test="seo"`

type WebClient struct {
	client *http.Client
	log    *log.Logger
}

func NewWebClient(timeout time.Duration, log *log.Logger) *WebClient {
	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))

	return &WebClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: rTripper,
		},
		log: log,
	}
}

// Fetch GETs pageURL following redirects and returns the body as UTF-8 text
// together with the final status code. Non-2xx responses are not errors.
func (w *WebClient) Fetch(ctx context.Context, pageURL string) ([]byte, int, error) {
	if err := ValidateURL(pageURL); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		w.log.WithError(err).Error(`failed to create request`)
		return nil, 0, errors.WrapKind(errors.ErrInvalidURL, err, `failed to create request for `+pageURL)
	}
	req.Header.Set("Cookie", auditCookie)

	resp, err := w.client.Do(req)
	if err != nil {
		metrics.HTTPClientErrorsTotal.WithLabelValues(http.MethodGet).Inc()
		w.log.WithError(err).WithField(`url`, pageURL).Error(`failed to load page`)
		return nil, 0, errors.WrapKind(errors.ErrFetch, err, `failed to load `+pageURL)
	}
	defer resp.Body.Close()

	bodyByte, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.HTTPClientErrorsTotal.WithLabelValues(http.MethodGet).Inc()
		w.log.Errorf(`failed to read response body. error: %v`, err)
		return nil, 0, errors.WrapKind(errors.ErrFetch, err, `failed to read response body of `+pageURL)
	}

	w.log.WithFields(log.Fields{
		`url`:    pageURL,
		`status`: resp.StatusCode,
		`bytes`:  len(bodyByte),
	}).Debug(`page fetched`)

	return toUTF8(bodyByte, resp.Header.Get("Content-Type")), resp.StatusCode, nil
}

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.WrapKind(errors.ErrInvalidURL, err, rawURL+` is not an url`)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Kind(errors.ErrInvalidURL, rawURL+` is not an http(s) url`)
	}
	if u.Host == "" {
		return errors.Kind(errors.ErrInvalidURL, rawURL+` has no host`)
	}
	return nil
}

// toUTF8 transcodes body when the Content-Type declares a charset other than
// UTF-8. Undeclared or unknown charsets leave the body untouched.
func toUTF8(body []byte, contentType string) []byte {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body
	}
	enc, name := charset.Lookup(params["charset"])
	if enc == nil || name == "utf-8" {
		return body
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
