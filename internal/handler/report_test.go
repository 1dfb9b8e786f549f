package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartell/driveledger/internal/domain"
	"github.com/pmartell/driveledger/internal/handler"
)

// mockReportServicer is a test double for handler.ReportServicer.
type mockReportServicer struct {
	build     func(ctx context.Context, driverIDs []uuid.UUID, start, end time.Time) (domain.Report, error)
	dashboard func(ctx context.Context, driverIDs []uuid.UUID) (domain.DashboardTotals, error)
}

func (m *mockReportServicer) Build(ctx context.Context, driverIDs []uuid.UUID, start, end time.Time) (domain.Report, error) {
	return m.build(ctx, driverIDs, start, end)
}
func (m *mockReportServicer) Dashboard(ctx context.Context, driverIDs []uuid.UUID) (domain.DashboardTotals, error) {
	return m.dashboard(ctx, driverIDs)
}

var _ handler.ReportServicer = (*mockReportServicer)(nil)

func newReportRouter(svc handler.ReportServicer, user domain.User) http.Handler {
	srv := handler.NewServer(nil, nil, nil, nil, nil, nil, nil, svc)
	return srv.Routes(authAs(user))
}

func TestReport_200(t *testing.T) {
	svc := &mockReportServicer{
		build: func(_ context.Context, driverIDs []uuid.UUID, start, end time.Time) (domain.Report, error) {
			assert.Nil(t, driverIDs)
			assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), end)
			return domain.Report{
				Start:     start,
				End:       end,
				Aggregate: domain.Aggregate{GrossIncome: 1234.56},
			}, nil
		},
	}
	router := newReportRouter(svc, adminUser())

	req := httptest.NewRequest(http.MethodGet, "/reports?start=2024-01-01&end=2024-12-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 1234.56, got.Aggregate.GrossIncome, 1e-9)
}

func TestReport_MissingStart_422(t *testing.T) {
	router := newReportRouter(&mockReportServicer{}, adminUser())

	req := httptest.NewRequest(http.MethodGet, "/reports?end=2024-12-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReport_BadDate_422(t *testing.T) {
	router := newReportRouter(&mockReportServicer{}, adminUser())

	req := httptest.NewRequest(http.MethodGet, "/reports?start=June+1st&end=2024-12-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReport_NonAdminScopedToOwnDriver(t *testing.T) {
	driverID := uuid.New()
	svc := &mockReportServicer{
		build: func(_ context.Context, driverIDs []uuid.UUID, _, _ time.Time) (domain.Report, error) {
			assert.Equal(t, []uuid.UUID{driverID}, driverIDs)
			return domain.Report{}, nil
		},
	}
	router := newReportRouter(svc, driverUser(driverID))

	req := httptest.NewRequest(http.MethodGet, "/reports?start=2024-01-01&end=2024-01-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReport_NonAdminRequestsOtherDriver_403(t *testing.T) {
	router := newReportRouter(&mockReportServicer{}, driverUser(uuid.New()))

	url := "/reports?start=2024-01-01&end=2024-01-31&driver_id=" + uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboard_200(t *testing.T) {
	driverID := uuid.New()
	svc := &mockReportServicer{
		dashboard: func(_ context.Context, driverIDs []uuid.UUID) (domain.DashboardTotals, error) {
			assert.Equal(t, []uuid.UUID{driverID}, driverIDs)
			return domain.DashboardTotals{GrossIncome: 500, TotalExpenses: 120, NetIncome: 380}, nil
		},
	}
	router := newReportRouter(svc, driverUser(driverID))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.DashboardTotals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 380, got.NetIncome, 1e-9)
}
