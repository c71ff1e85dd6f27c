package get_schedule_config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type failingService struct{}

func (failingService) GetForCourt(context.Context, int64) (*domain.ScheduleConfig, error) {
	return nil, errors.New("connection refused")
}

func get(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetScheduleConfigHierarchy(t *testing.T) {
	store := testutil.NewStore()
	repo := store.ScheduleRepo()
	svc := schedule.NewService(repo, &domain.ScheduleConfig{
		SlotDurationMinutes: 30,
		Weekday:             domain.DayHours{Open: types.MustTimeString("08:00"), Close: types.MustTimeString("22:00")},
	}, testutil.Logger{})
	h := NewHandler(svc, testutil.Logger{})

	_, err := repo.Upsert(context.Background(), &domain.ScheduleConfig{
		SlotDurationMinutes: 60,
		Weekday:             domain.DayHours{Open: types.MustTimeString("07:00"), Close: types.MustTimeString("23:00")},
		Weekend:             &domain.DayHours{Open: types.MustTimeString("09:00"), Close: types.MustTimeString("20:00")},
	})
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), &domain.ScheduleConfig{
		CourtID:             ptr.Ptr(int64(2)),
		SlotDurationMinutes: 90,
		Weekday:             domain.DayHours{Open: types.MustTimeString("06:00"), Close: types.MustTimeString("21:00")},
		Break:               &domain.BreakWindow{Start: types.MustTimeString("12:00"), End: types.MustTimeString("13:30")},
	})
	require.NoError(t, err)

	t.Run("court specific", func(t *testing.T) {
		rec := get(t, h, "/api/v1/schedule-config?courtId=2")
		require.Equal(t, http.StatusOK, rec.Code)

		var cfg ScheduleConfigResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
		assert.False(t, cfg.IsDefault)
		require.NotNil(t, cfg.CourtID)
		assert.Equal(t, int64(2), *cfg.CourtID)
		assert.Equal(t, 90, cfg.SlotDurationMinutes)
		assert.Equal(t, HoursModel{Open: "06:00", Close: "21:00"}, cfg.Weekday)
		assert.Equal(t, &BreakModel{Start: "12:00", End: "13:30"}, cfg.Break)
		assert.Nil(t, cfg.Weekend)
	})

	t.Run("falls back to global", func(t *testing.T) {
		rec := get(t, h, "/api/v1/schedule-config?courtId=5")
		require.Equal(t, http.StatusOK, rec.Code)

		var cfg ScheduleConfigResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
		assert.False(t, cfg.IsDefault)
		assert.Nil(t, cfg.CourtID)
		assert.Equal(t, 60, cfg.SlotDurationMinutes)
		assert.Equal(t, &HoursModel{Open: "09:00", Close: "20:00"}, cfg.Weekend)
		assert.Nil(t, cfg.Break)
	})

	t.Run("no court id", func(t *testing.T) {
		rec := get(t, h, "/api/v1/schedule-config")
		require.Equal(t, http.StatusOK, rec.Code)

		var cfg ScheduleConfigResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
		assert.Nil(t, cfg.CourtID)
		assert.Equal(t, 60, cfg.SlotDurationMinutes)
	})
}

func TestGetScheduleConfigDefaults(t *testing.T) {
	store := testutil.NewStore()
	svc := schedule.NewService(store.ScheduleRepo(), &domain.ScheduleConfig{
		SlotDurationMinutes: 30,
		Weekday:             domain.DayHours{Open: types.MustTimeString("08:00"), Close: types.MustTimeString("22:00")},
	}, testutil.Logger{})

	rec := get(t, NewHandler(svc, testutil.Logger{}), "/api/v1/schedule-config?courtId=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg ScheduleConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.True(t, cfg.IsDefault)
	assert.Equal(t, 30, cfg.SlotDurationMinutes)
	assert.Nil(t, cfg.UpdatedAt)
}

func TestGetScheduleConfigErrors(t *testing.T) {
	store := testutil.NewStore()
	svc := schedule.NewService(store.ScheduleRepo(), &domain.ScheduleConfig{SlotDurationMinutes: 30}, testutil.Logger{})

	tests := []struct {
		name    string
		service ScheduleService
		path    string
		want    int
	}{
		{name: "court id not a number", service: svc, path: "/api/v1/schedule-config?courtId=abc", want: http.StatusBadRequest},
		{name: "court id zero", service: svc, path: "/api/v1/schedule-config?courtId=0", want: http.StatusBadRequest},
		{name: "court id negative", service: svc, path: "/api/v1/schedule-config?courtId=-3", want: http.StatusBadRequest},
		{name: "storage failure", service: failingService{}, path: "/api/v1/schedule-config?courtId=1", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, NewHandler(tt.service, testutil.Logger{}), tt.path)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
