package transport

import "time"

// OnboardClientRequest creates a client account plus their first order.
type OnboardClientRequest struct {
	Username       string  `json:"username" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	Gender         *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	Address        *string `json:"address,omitempty"`
	CountryID      string  `json:"countryId" validate:"required,uuid"`
	VisaTypeID     string  `json:"visaTypeId" validate:"required,uuid"`
	InitialPayment float64 `json:"initialPayment" validate:"min=0"`
	FinalPayment   float64 `json:"finalPayment" validate:"min=0"`
}

// UpdateOrderStatusRequest changes an order's status.
type UpdateOrderStatusRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
	Status  string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// OrderResponse is the API shape of an order.
type OrderResponse struct {
	ID             string    `json:"id"`
	CountryID      string    `json:"countryId"`
	VisaTypeID     string    `json:"visaTypeId"`
	ClientID       string    `json:"clientId"`
	SalesPersonID  string    `json:"salesPersonId"`
	InitialPayment float64   `json:"initialPayment"`
	FinalPayment   float64   `json:"finalPayment"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ClientOrderResponse pairs an order with the client's contact details.
type ClientOrderResponse struct {
	Order       OrderResponse `json:"order"`
	ClientName  string        `json:"clientName"`
	ClientEmail string        `json:"clientEmail"`
	ClientPhone *string       `json:"clientPhone,omitempty"`
}
