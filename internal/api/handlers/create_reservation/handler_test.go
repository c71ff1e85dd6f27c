package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func reservation(id int64, apartment string, p domain.Priority) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		CourtID:     1,
		ApartmentID: apartment,
		Date:        time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("10:00"),
		Status:      domain.StatusConfirmed,
		Priority:    p,
	}
}

func serve(uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/reservations", NewHandler(uc, testutil.Logger{}).Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	r.Header.Set(middleware.HeaderUserID, "7")
	r.Header.Set(middleware.HeaderUserName, "Ana")
	r.Header.Set(middleware.HeaderApartmentID, "A-101")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

const validBody = `{"courtId":1,"date":"2026-03-12","startTime":"09:00","endTime":"10:00","forceDisplacement":true,"players":["Ana","Bo"]}`

func TestCreateReservation(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		Reservation: reservation(10, "A-101", domain.PriorityGuaranteed),
		Displaced:   []*domain.Reservation{reservation(3, "B-202", domain.PriorityProvisional)},
	}}

	rec := serve(uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "A-101", uc.got.ApartmentID)
	assert.Equal(t, int64(7), uc.got.UserID)
	assert.Equal(t, "Ana", uc.got.UserName)
	assert.True(t, uc.got.ForceDisplacement)
	assert.Equal(t, "10:00", uc.got.EndTime.String())
	assert.Equal(t, []string{"Ana", "Bo"}, uc.got.Players)

	var resp CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.Reservation.ID)
	assert.Equal(t, "guaranteed", resp.Reservation.Priority)
	require.Len(t, resp.Displaced, 1)
	assert.Equal(t, "B-202", resp.Displaced[0].ApartmentID)
}

func TestCreateReservationConfirmationRequired(t *testing.T) {
	candidate := reservation(3, "B-202", domain.PriorityProvisional)
	uc := &stubUseCase{err: fmt.Errorf("wrapped: %w", &createBooking.ConfirmationRequiredError{Candidate: candidate, Candidates: 2})}

	rec := serve(uc, validBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.ConfirmationRequired)
	assert.False(t, resp.Retry)
	require.NotNil(t, resp.Candidate)
	assert.Equal(t, int64(3), resp.Candidate.ID)
	assert.Equal(t, 2, resp.Candidates)
}

func TestCreateReservationErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		wantRetry bool
	}{
		{name: "race lost", err: createBooking.ErrDisplacementRaceLost, status: http.StatusConflict, wantRetry: true},
		{name: "concurrent", err: createBooking.ErrConcurrentBooking, status: http.StatusConflict, wantRetry: true},
		{name: "missing apartment", err: createBooking.ErrMissingApartment, status: http.StatusBadRequest},
		{name: "too soon", err: createBooking.ErrTooSoon, status: http.StatusBadRequest},
		{name: "too far", err: createBooking.ErrTooFarAhead, status: http.StatusBadRequest},
		{name: "bad range", err: createBooking.ErrInvalidTimeRange, status: http.StatusBadRequest},
		{name: "court", err: createBooking.ErrCourtNotFound, status: http.StatusNotFound},
		{name: "blocked", err: createBooking.ErrSlotBlocked, status: http.StatusConflict},
		{name: "unavailable", err: createBooking.ErrSlotUnavailable, status: http.StatusConflict},
		{name: "duplicate", err: createBooking.ErrDuplicateSlotForApartment, status: http.StatusConflict},
		{name: "capacity", err: createBooking.ErrApartmentAtCapacity, status: http.StatusConflict},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.status, rec.Code)

			var resp ConflictResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantRetry, resp.Retry)
		})
	}
}

func TestCreateReservationBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{`},
		{name: "unknown field", body: `{"courtId":1,"companyId":2}`},
		{name: "bad date", body: `{"courtId":1,"date":"12.03.2026","startTime":"09:00","endTime":"10:00"}`},
		{name: "bad time", body: `{"courtId":1,"date":"2026-03-12","startTime":"9am","endTime":"10:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := serve(uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
