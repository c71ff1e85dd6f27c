package get_apartment_notifications

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

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestGetApartmentNotifications(t *testing.T) {
	store := testutil.NewStore()
	repo := store.NotificationRepo()
	for _, slot := range [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}} {
		require.NoError(t, repo.Create(context.Background(), &domain.DisplacementNotification{
			ReservationID: 1, RecipientApartmentID: "B-202", DisplacingApartment: "A-101",
			CourtID: 1, CourtName: "Court 1",
			Date:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			StartTime: types.MustTimeString(slot[0]), EndTime: types.MustTimeString(slot[1]),
		}))
	}
	svc := reservations.NewService(store.ReservationRepo(), repo, nil, nil, nil,
		testutil.NewClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)), time.UTC, testutil.Logger{})

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/apartments/{apartmentId}/notifications", NewHandler(svc, testutil.Logger{}).Handle).
		Methods(http.MethodGet)

	get := func(apartment string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/apartments/B-202/notifications", nil)
		r.Header.Set(middleware.HeaderUserID, "5")
		r.Header.Set(middleware.HeaderApartmentID, apartment)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		return rec
	}

	rec := get("B-202")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 2)
	assert.Equal(t, "10:00", resp.Notifications[0].StartTime)
	assert.Equal(t, "A-101", resp.Notifications[0].DisplacingApartment)

	assert.Equal(t, http.StatusForbidden, get("A-101").Code)
}
