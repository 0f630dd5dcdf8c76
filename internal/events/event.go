// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"backoffice_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// PasswordResetRequested is published when a user requests a password reset OTP.
type PasswordResetRequested struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	OTP    string    `json:"otp"`
}

func (e PasswordResetRequested) EventName() string { return "auth.password.reset_requested" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the system.
type LeadCreated struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Inquiry     string    `json:"inquiry"`
	Source      string    `json:"source,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadAssigned is published when a lead is handed to an advisor.
type LeadAssigned struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	LeadName     string    `json:"leadName"`
	AssigneeID   uuid.UUID `json:"assigneeId"`
	AssignedByID uuid.UUID `json:"assignedById"`
}

func (e LeadAssigned) EventName() string { return "leads.lead.assigned" }

// FollowUpOverdue is published by the scheduler when a lead's follow-up
// date has passed without action.
type FollowUpOverdue struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	LeadName   string    `json:"leadName"`
	AssigneeID uuid.UUID `json:"assigneeId"`
	FollowUpAt time.Time `json:"followUpAt"`
}

func (e FollowUpOverdue) EventName() string { return "leads.followup.overdue" }

// =============================================================================
// Tickets Domain Events
// =============================================================================

// UserTicketCreated is published when a customer submits a support ticket.
type UserTicketCreated struct {
	BaseEvent
	TicketID    uuid.UUID `json:"ticketId"`
	OrderNumber string    `json:"orderNumber"`
}

func (e UserTicketCreated) EventName() string { return "tickets.user_ticket.created" }

// TicketAttended is published when a CSR lead takes ownership of a user ticket.
type TicketAttended struct {
	BaseEvent
	TicketID   uuid.UUID `json:"ticketId"`
	AttendedBy uuid.UUID `json:"attendedBy"`
}

func (e TicketAttended) EventName() string { return "tickets.user_ticket.attended" }

// UserTicketConverted is published when a user ticket becomes a CSR ticket.
type UserTicketConverted struct {
	BaseEvent
	UserTicketID uuid.UUID `json:"userTicketId"`
	CsrTicketID  uuid.UUID `json:"csrTicketId"`
	ConvertedBy  uuid.UUID `json:"convertedBy"`
}

func (e UserTicketConverted) EventName() string { return "tickets.user_ticket.converted" }
