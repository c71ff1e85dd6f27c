package gameservice

// CancelRequest тело запроса отмены игры по бронированию
type CancelRequest struct {
	Reason string `json:"reason"`
}

// CancelResponse ответ сервиса игр
type CancelResponse struct {
	ReservationID  int64 `json:"reservationId"`
	CancelledGames int   `json:"cancelledGames"`
}

// ErrorResponse модель ошибки от сервиса игр
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
