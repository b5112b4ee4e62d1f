package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"seo_meta_audit/internal/domain/models"
	auditerrors "seo_meta_audit/internal/pkg/errors"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWebClient is a mock implementation of the WebClient interface
type MockWebClient struct {
	mock.Mock
}

func (m *MockWebClient) Fetch(ctx context.Context, url string) ([]byte, int, error) {
	args := m.Called(ctx, url)
	body, _ := args.Get(0).([]byte)
	return body, args.Int(1), args.Error(2)
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func page(title, description string) []byte {
	return []byte(`<!DOCTYPE html><html><head><title>` + title + `</title>` +
		`<meta name="description" content="` + description + `"></head><body></body></html>`)
}

func TestAuditor_Audit(t *testing.T) {
	rows := []models.Row{
		{Line: 2, URL: "http://example.com", ExpectedTitle: "Example Title", ExpectedDescription: "Example Description"},
		{Line: 3, URL: "http://example.org", ExpectedTitle: "Example Title", ExpectedDescription: "Org Description"},
	}

	tests := []struct {
		name     string
		pages    map[string][]byte
		expected []models.Mismatch
	}{
		{
			name: "all rows match",
			pages: map[string][]byte{
				"http://example.com": page("Example Title", "Example Description"),
				"http://example.org": page("Example Title", "Org Description"),
			},
			expected: []models.Mismatch{},
		},
		{
			name: "title mismatch",
			pages: map[string][]byte{
				"http://example.com": page("Example", "Example Description"),
				"http://example.org": page("Example Title", "Org Description"),
			},
			expected: []models.Mismatch{
				{URL: "http://example.com", Field: models.FieldTitle, Actual: "Example", Expected: "Example Title"},
			},
		},
		{
			name: "mismatches keep row order",
			pages: map[string][]byte{
				"http://example.com": page("example title", "Example Description"),
				"http://example.org": []byte(`<title>Other</title>`),
			},
			expected: []models.Mismatch{
				{URL: "http://example.com", Field: models.FieldTitle, Actual: "example title", Expected: "Example Title"},
				{URL: "http://example.org", Field: models.FieldTitle, Actual: "Other", Expected: "Example Title"},
				{URL: "http://example.org", Field: models.FieldDescription, Actual: "", Expected: "Org Description"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			webClient := new(MockWebClient)
			for url, body := range tt.pages {
				webClient.On("Fetch", mock.Anything, url).Return(body, http.StatusOK, nil).Once()
			}

			report, err := NewAuditor(quietLogger(), webClient, false).Audit(context.Background(), rows)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.expected, report.Mismatches); diff != "" {
				t.Fatalf("mismatches differ (-want +got):\n%s", diff)
			}
			assert.Empty(t, report.RowErrors)
			assert.Equal(t, len(rows), report.Rows)
			assert.NotEmpty(t, report.RunID)
			webClient.AssertExpectations(t)
		})
	}
}

func TestAuditor_AuditAbortsOnRowError(t *testing.T) {
	rows := []models.Row{
		{Line: 2, URL: "not a url", ExpectedTitle: "T", ExpectedDescription: "D"},
		{Line: 3, URL: "http://example.com", ExpectedTitle: "T", ExpectedDescription: "D"},
	}

	webClient := new(MockWebClient)
	webClient.On("Fetch", mock.Anything, "not a url").
		Return(nil, 0, auditerrors.Kind(auditerrors.ErrInvalidURL, "not a url is not an url")).Once()

	report, err := NewAuditor(quietLogger(), webClient, false).Audit(context.Background(), rows)

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, auditerrors.ErrInvalidURL), "got %v", err)
	webClient.AssertNotCalled(t, "Fetch", mock.Anything, "http://example.com")
}

func TestAuditor_AuditIsolatesRowErrors(t *testing.T) {
	rows := []models.Row{
		{Line: 2, URL: "not a url", ExpectedTitle: "T", ExpectedDescription: "D"},
		{Line: 3, URL: "http://down.example.com", ExpectedTitle: "T", ExpectedDescription: "D"},
		{Line: 4, URL: "http://example.com", ExpectedTitle: "T", ExpectedDescription: "D"},
	}

	webClient := new(MockWebClient)
	webClient.On("Fetch", mock.Anything, "not a url").
		Return(nil, 0, auditerrors.Kind(auditerrors.ErrInvalidURL, "not a url is not an url")).Once()
	webClient.On("Fetch", mock.Anything, "http://down.example.com").
		Return(nil, 0, auditerrors.WrapKind(auditerrors.ErrFetch, errors.New("connection refused"), "failed to load")).Once()
	webClient.On("Fetch", mock.Anything, "http://example.com").
		Return(page("T", "Wrong"), http.StatusOK, nil).Once()

	report, err := NewAuditor(quietLogger(), webClient, true).Audit(context.Background(), rows)
	require.NoError(t, err)

	expected := []models.RowError{
		{URL: "not a url", Line: 2},
		{URL: "http://down.example.com", Line: 3},
	}
	if diff := cmp.Diff(expected, report.RowErrors, cmpopts.IgnoreFields(models.RowError{}, "Err")); diff != "" {
		t.Fatalf("row errors differ (-want +got):\n%s", diff)
	}
	assert.True(t, errors.Is(report.RowErrors[0].Err, auditerrors.ErrInvalidURL))
	assert.True(t, errors.Is(report.RowErrors[1].Err, auditerrors.ErrFetch))
	assert.Equal(t, []models.Mismatch{
		{URL: "http://example.com", Field: models.FieldDescription, Actual: "Wrong", Expected: "D"},
	}, report.Mismatches)
	assert.False(t, report.OK())
	webClient.AssertExpectations(t)
}

func TestAuditor_AuditNonOKStatusIsCompared(t *testing.T) {
	rows := []models.Row{{Line: 2, URL: "http://example.com/gone", ExpectedTitle: "Gone", ExpectedDescription: ""}}

	webClient := new(MockWebClient)
	webClient.On("Fetch", mock.Anything, "http://example.com/gone").
		Return([]byte(`<title>Gone</title>`), http.StatusNotFound, nil).Once()

	report, err := NewAuditor(quietLogger(), webClient, false).Audit(context.Background(), rows)
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestAuditor_AuditCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	webClient := new(MockWebClient)
	report, err := NewAuditor(quietLogger(), webClient, true).Audit(ctx, []models.Row{{Line: 2, URL: "http://example.com"}})

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	webClient.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}
