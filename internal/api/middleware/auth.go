// Package middleware holds the HTTP middleware of the service.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

// Заголовки, которые проставляет API gateway
const (
	HeaderUserID      = "X-User-ID"
	HeaderUserName    = "X-User-Name"
	HeaderApartmentID = "X-Apartment-ID"
	HeaderUserRole    = "X-User-Role"

	RoleAdmin = "admin"
)

const (
	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
	msgAdminOnly     = "операция доступна только администратору"
)

type contextKey string

const (
	userIDKey      contextKey = "user_id"
	userNameKey    contextKey = "user_name"
	apartmentIDKey contextKey = "apartment_id"
	roleKey        contextKey = "role"
)

// Auth извлекает личность пользователя из заголовков. X-User-ID обязателен.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userNameKey, strings.TrimSpace(r.Header.Get(HeaderUserName)))
		ctx = context.WithValue(ctx, apartmentIDKey, strings.TrimSpace(r.Header.Get(HeaderApartmentID)))
		ctx = context.WithValue(ctx, roleKey, strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только пользователей с ролью admin. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserName возвращает имя пользователя из контекста
func GetUserName(ctx context.Context) string {
	name, _ := ctx.Value(userNameKey).(string)
	return name
}

// GetApartmentID возвращает квартиру пользователя, пустая строка - неизвестна
func GetApartmentID(ctx context.Context) string {
	id, _ := ctx.Value(apartmentIDKey).(string)
	return id
}

// IsAdmin сообщает, что у пользователя роль admin
func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(roleKey).(string)
	return role == RoleAdmin
}
