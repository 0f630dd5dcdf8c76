package transport

import "time"

// CreateCsrTicketRequest opens a CSR ticket on behalf of a customer.
type CreateCsrTicketRequest struct {
	OrderNumber string  `json:"orderNumber" validate:"required"`
	Problem     string  `json:"problem" validate:"required"`
	Fees        *string `json:"fees,omitempty"`
	Procedure   *string `json:"procedure,omitempty"`
	Condition   *string `json:"condition,omitempty"`
}

// CreateUserTicketRequest is the public ticket submission form.
type CreateUserTicketRequest struct {
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	OrderNumber string `json:"orderNumber" validate:"required"`
	Problem     string `json:"problem" validate:"required"`
}

// AttendTicketRequest carries the optional fulfillment fields merged when a
// CSR lead attends a ticket.
type AttendTicketRequest struct {
	NewProduct        *string    `json:"newProduct,omitempty"`
	AttemptDate       *time.Time `json:"attemptDate,omitempty"`
	Qty               *int       `json:"qty,omitempty" validate:"omitempty,min=0"`
	Pkgs              *int       `json:"pkgs,omitempty" validate:"omitempty,min=0"`
	ShippingCompanyID *string    `json:"shippingCompanyId,omitempty" validate:"omitempty,uuid"`
	TrackingNo        *string    `json:"trackingNo,omitempty"`
	DriverID          *string    `json:"driverId,omitempty" validate:"omitempty,uuid"`
	ShippedDate       *time.Time `json:"shippedDate,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// ConvertTicketRequest merges extra fields into the CSR ticket generated
// from a user ticket.
type ConvertTicketRequest struct {
	Fees      *string `json:"fees,omitempty"`
	Procedure *string `json:"procedure,omitempty"`
	Condition *string `json:"condition,omitempty"`
	Employee  *string `json:"employee,omitempty" validate:"omitempty,uuid"`
}

// CsrTicketResponse is the API shape of a CSR ticket.
type CsrTicketResponse struct {
	ID                string     `json:"id"`
	OrderNumber       string     `json:"orderNumber"`
	Problem           string     `json:"problem"`
	Fees              *string    `json:"fees,omitempty"`
	Procedure         *string    `json:"procedure,omitempty"`
	Condition         *string    `json:"condition,omitempty"`
	CreatedBy         string     `json:"createdBy"`
	Status            string     `json:"status"`
	AttendedStatus    string     `json:"attendedStatus"`
	AttendedBy        *string    `json:"attendedBy,omitempty"`
	NewProduct        *string    `json:"newProduct,omitempty"`
	AttemptDate       *time.Time `json:"attemptDate,omitempty"`
	Qty               *int       `json:"qty,omitempty"`
	Pkgs              *int       `json:"pkgs,omitempty"`
	ShippingCompanyID *string    `json:"shippingCompanyId,omitempty"`
	TrackingNo        *string    `json:"trackingNo,omitempty"`
	DriverID          *string    `json:"driverId,omitempty"`
	ShippedDate       *time.Time `json:"shippedDate,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// UserTicketResponse is the API shape of a customer-submitted ticket.
type UserTicketResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	OrderNumber string    `json:"orderNumber"`
	Problem     string    `json:"problem"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TicketCountsResponse aggregates ticket statistics.
type TicketCountsResponse struct {
	Pending     int64 `json:"pending"`
	Completed   int64 `json:"completed"`
	Attended    int64 `json:"attended"`
	Unattended  int64 `json:"unattended"`
	UserTickets int64 `json:"userTickets"`
}
