package transport

import "time"

// AssignLeadRequest assigns a lead to a user.
type AssignLeadRequest struct {
	LeadID  string  `json:"leadId" validate:"required,uuid"`
	UserID  string  `json:"userId" validate:"required,uuid"`
	Remarks *string `json:"remarks,omitempty"`
}

// AssignmentResponse is the API shape of an assignment row.
type AssignmentResponse struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"leadId"`
	UserID     string    `json:"userId"`
	AssignedBy string    `json:"assignedBy"`
	Remarks    *string   `json:"remarks,omitempty"`
	AssignedAt time.Time `json:"assignedAt"`
}
