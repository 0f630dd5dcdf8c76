package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for CSR and customer tickets.
type Repository interface {
	CreateCsr(ctx context.Context, params CreateCsrTicketParams) (CsrTicket, error)
	ListCsr(ctx context.Context) ([]CsrTicket, error)
	GetCsrByID(ctx context.Context, id uuid.UUID) (CsrTicket, error)
	CompletePending(ctx context.Context, id uuid.UUID) (CsrTicket, error)
	Attend(ctx context.Context, id uuid.UUID, params AttendParams) (CsrTicket, error)

	CreateUser(ctx context.Context, params CreateUserTicketParams) (UserTicket, error)
	ListUser(ctx context.Context) ([]UserTicket, error)
	ConvertUserTicket(ctx context.Context, userTicketID uuid.UUID, params ConvertParams) (CsrTicket, error)

	CountCsrByStatus(ctx context.Context, status string) (int64, error)
	CountCsrByAttended(ctx context.Context, attendedStatus string) (int64, error)
	CountUser(ctx context.Context) (int64, error)
}
