package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type stubUseCase struct {
	got  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc GetAvailabilityUseCase, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/courts/{courtId}/availability", NewHandler(uc, testutil.Logger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestGetAvailability(t *testing.T) {
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	occupant := &domain.Reservation{ID: 5, ApartmentID: "B-202"}
	provisional := domain.PriorityProvisional

	uc := &stubUseCase{resp: &getAvailability.Response{
		Court:               &domain.Court{ID: 1, Name: "Court 1"},
		Date:                date,
		SlotDurationMinutes: 60,
		Slots: []domain.SlotAvailability{
			{Slot: domain.Slot{Start: types.MustTimeString("08:00"), End: types.MustTimeString("09:00")}, Available: true},
			{
				Slot:         domain.Slot{Start: types.MustTimeString("09:00"), End: types.MustTimeString("10:00")},
				Reservation:  occupant,
				Priority:     &provisional,
				Displaceable: true,
			},
			{
				Slot:        domain.Slot{Start: types.MustTimeString("10:00"), End: types.MustTimeString("11:00")},
				Blocked:     true,
				BlockReason: ptr.Ptr("maintenance"),
			},
		},
	}}

	rec := serve(uc, "/api/v1/courts/1/availability?date=2026-03-12")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), uc.got.CourtID)
	assert.Equal(t, date, uc.got.Date)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 3)
	assert.True(t, resp.Slots[0].Available)
	assert.Nil(t, resp.Slots[0].Priority)
	assert.Equal(t, "provisional", *resp.Slots[1].Priority)
	assert.Equal(t, int64(5), *resp.Slots[1].ReservationID)
	assert.True(t, resp.Slots[1].Displaceable)
	assert.Equal(t, "maintenance", *resp.Slots[2].BlockReason)
}

func TestGetAvailabilityErrors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{name: "bad court id", url: "/api/v1/courts/abc/availability?date=2026-03-12", status: http.StatusBadRequest},
		{name: "missing date", url: "/api/v1/courts/1/availability", status: http.StatusBadRequest},
		{name: "court not found", url: "/api/v1/courts/1/availability?date=2026-03-12", err: getAvailability.ErrCourtNotFound, status: http.StatusNotFound},
		{name: "internal", url: "/api/v1/courts/1/availability?date=2026-03-12", err: getAvailability.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.url)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
