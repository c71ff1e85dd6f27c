package get_apartment_reservations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestGetApartmentReservations(t *testing.T) {
	store := testutil.NewStore()
	store.Seed(&domain.Reservation{
		CourtID: 1, ApartmentID: "A-101",
		Date:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00"),
		Priority: domain.PriorityProvisional,
	})

	svc := reservations.NewService(
		store.ReservationRepo(), store.NotificationRepo(), nil, nil, nil,
		testutil.NewClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)), time.UTC, testutil.Logger{},
	)
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/apartments/{apartmentId}/reservations", NewHandler(svc, testutil.Logger{}).Handle)

	get := func(apartment string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/apartments/A-101/reservations", nil)
		r.Header.Set(middleware.HeaderUserID, "7")
		r.Header.Set(middleware.HeaderApartmentID, apartment)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		return rec
	}

	rec := get("A-101")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ReservationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "guaranteed", resp.Reservations[0].Priority, "sole active reservation is shown as guaranteed")

	assert.Equal(t, http.StatusForbidden, get("B-202").Code)
}
