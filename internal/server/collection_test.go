package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	collectiondomain "github.com/solidaria/backoffice/internal/collection/domain"
	"github.com/solidaria/backoffice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCollectionSvc struct {
	mock.Mock
}

func (m *mockCollectionSvc) Preview(ctx context.Context, collectionDate time.Time) (collectiondomain.Preview, error) {
	args := m.Called(ctx, collectionDate)
	return args.Get(0).(collectiondomain.Preview), args.Error(1)
}

func (m *mockCollectionSvc) BuildRun(ctx context.Context, req collectiondomain.BuildRequest) (collectiondomain.CollectionRun, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(collectiondomain.CollectionRun), args.Error(1)
}

func (m *mockCollectionSvc) ValidateRun(run collectiondomain.CollectionRun) []error {
	args := m.Called(run)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]error)
}

func (m *mockCollectionSvc) Export(ctx context.Context, req collectiondomain.BuildRequest) (collectiondomain.ExportResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(collectiondomain.ExportResult), args.Error(1)
}

func (m *mockCollectionSvc) ListRuns(ctx context.Context) ([]collectiondomain.CollectionRun, error) {
	args := m.Called(ctx)
	return args.Get(0).([]collectiondomain.CollectionRun), args.Error(1)
}

func (m *mockCollectionSvc) GetRun(ctx context.Context, id snowflake.ID) (collectiondomain.CollectionRun, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(collectiondomain.CollectionRun), args.Error(1)
}

func newTestServer(t *testing.T, svc collectiondomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := NewEngine(zap.NewNop())
	NewServer(ServerParams{
		Gin:           engine,
		Cfg:           config.Config{OrgID: "solidaria"},
		Log:           zap.NewNop(),
		CollectionSvc: svc,
	})
	return engine
}

func TestExportEndpoint_ReturnsXMLWithHeaders(t *testing.T) {
	svc := &mockCollectionSvc{}
	svc.On("Export", mock.Anything, mock.Anything).Return(collectiondomain.ExportResult{
		Run:      collectiondomain.CollectionRun{ID: 1, MessageID: "MSG-1"},
		File:     []byte("<Document/>"),
		Filename: "sepa-solidaria-20240205.xml",
	}, nil)

	body, _ := json.Marshal(map[string]any{
		"collection_date": "2024-02-05",
		"donor_ids":       []string{"100"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collections/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer(t, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<Document/>", rec.Body.String())
	assert.Equal(t, "MSG-1", rec.Header().Get("X-Message-Id"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sepa-solidaria-20240205.xml")
	assert.Empty(t, rec.Header().Get("X-Persistence-Warning"))
}

func TestExportEndpoint_PersistenceWarningHeader(t *testing.T) {
	svc := &mockCollectionSvc{}
	svc.On("Export", mock.Anything, mock.Anything).Return(collectiondomain.ExportResult{
		Run:         collectiondomain.CollectionRun{ID: 1, MessageID: "MSG-1"},
		File:        []byte("<Document/>"),
		Filename:    "sepa-solidaria-20240205.xml",
		Persistence: assert.AnError,
	}, nil)

	body, _ := json.Marshal(map[string]any{
		"collection_date": "2024-02-05",
		"donor_ids":       []string{"100"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collections/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer(t, svc).ServeHTTP(rec, req)

	// The file still comes back; the recording failure is a header, not
	// an error status.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Persistence-Warning"))
}

func TestExportEndpoint_InvalidDate(t *testing.T) {
	svc := &mockCollectionSvc{}
	body, _ := json.Marshal(map[string]any{
		"collection_date": "05/02/2024",
		"donor_ids":       []string{"100"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collections/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestExportEndpoint_NoBankAccountConflict(t *testing.T) {
	svc := &mockCollectionSvc{}
	svc.On("Export", mock.Anything, mock.Anything).
		Return(collectiondomain.ExportResult{}, collectiondomain.ErrNoBankAccount)

	body, _ := json.Marshal(map[string]any{
		"collection_date": "2024-02-05",
		"donor_ids":       []string{"100"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collections/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPreviewEndpoint(t *testing.T) {
	svc := &mockCollectionSvc{}
	svc.On("Preview", mock.Anything, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
		Return(collectiondomain.Preview{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/preview?collection_date=2024-02-01", nil)
	rec := httptest.NewRecorder()
	newTestServer(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGetRunEndpoint_NotFound(t *testing.T) {
	svc := &mockCollectionSvc{}
	svc.On("GetRun", mock.Anything, snowflake.ID(42)).
		Return(collectiondomain.CollectionRun{}, collectiondomain.ErrRunNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/runs/42", nil)
	rec := httptest.NewRecorder()
	newTestServer(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
