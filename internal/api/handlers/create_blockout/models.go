package create_blockout

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/blockouts"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// CreateBlockoutRequest HTTP request model
type CreateBlockoutRequest struct {
	Date      string `json:"date"`      // "2026-03-12"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
}

// BlockoutResponse HTTP response model
type BlockoutResponse struct {
	ID        int64  `json:"id"`
	CourtID   int64  `json:"courtId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason"`
	CreatedBy int64  `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CreateBlockoutRequest) ToServiceRequest(courtID, createdBy int64) (*blockouts.CreateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}
	return &blockouts.CreateRequest{
		CourtID:   courtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    r.Reason,
		CreatedBy: createdBy,
	}, nil
}

// FromDomainBlockout конвертирует блокировку в HTTP response
func FromDomainBlockout(b *domain.Blockout) BlockoutResponse {
	return BlockoutResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
