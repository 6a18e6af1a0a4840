package create_booking

import (
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	createBooking "github.com/avilov/BOH-SchedulingService/internal/usecase/create_booking"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	AgentID       int64  `json:"agentId"`
	Date          string `json:"date"` // "2026-01-15"
	Time          string `json:"time"` // "10:00"
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Topic         string `json:"topic"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	SlotID        int64  `json:"slotId"`
	AgentID       int64  `json:"agentId"`
	AgentName     string `json:"agentName"`
	BranchName    string `json:"branchName"`
	BranchAddress string `json:"branchAddress"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	State         string `json:"state"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Topic         string `json:"topic"`
	BookedAt      string `json:"bookedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		AgentID:       r.AgentID,
		Date:          date,
		Time:          t,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Topic:         r.Topic,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		SlotID:        resp.SlotID,
		AgentID:       resp.AgentID,
		AgentName:     resp.AgentName,
		BranchName:    resp.BranchName,
		BranchAddress: resp.BranchAddress,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		State:         resp.State,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		Topic:         resp.Topic,
		BookedAt:      resp.BookedAt.Format(time.RFC3339),
	}
}
