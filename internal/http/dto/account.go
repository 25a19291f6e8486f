package dto

import (
	"time"

	"replyloop.app/engine/internal/model"
)

type CreateAccountRequest struct {
	Handle      string  `json:"handle" binding:"required,min=1,max=50"`
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,max=255"`
	Category    *string `json:"category,omitempty" binding:"omitempty,max=100"`
}

type AccountResponse struct {
	ID          int64     `json:"id,string"`
	Handle      string    `json:"handle"`
	DisplayName *string   `json:"display_name,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToAccountResponse(a *model.MonitoredAccount) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Handle:      a.Handle,
		DisplayName: a.DisplayName,
		Category:    a.Category,
		CreatedAt:   a.CreatedAt,
	}
}

type RunResponse struct {
	RunID int64 `json:"run_id,string"`
}
