package transport

import "time"

type CreateLeadRequest struct {
	Name           string  `json:"name" validate:"required"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
	Inquiry        string  `json:"inquiry" validate:"required"`
	InquiryCountry *string `json:"inquiryCountry,omitempty"`
	Budget         *string `json:"budget,omitempty"`
	Detail         *string `json:"detail,omitempty"`
	Occupation     *string `json:"occupation,omitempty"`
	Service        *string `json:"service,omitempty"`
	Source         *string `json:"source,omitempty"`
	Advisor        *string `json:"advisor,omitempty"`
	Status         string  `json:"status" validate:"required"`
}

type UpdateLeadRequest struct {
	Name           *string `json:"name,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
	Inquiry        *string `json:"inquiry,omitempty"`
	InquiryCountry *string `json:"inquiryCountry,omitempty"`
	Budget         *string `json:"budget,omitempty"`
	Detail         *string `json:"detail,omitempty"`
	Occupation     *string `json:"occupation,omitempty"`
	Service        *string `json:"service,omitempty"`
	Source         *string `json:"source,omitempty"`
	Advisor        *string `json:"advisor,omitempty"`
	Status         *string `json:"status,omitempty"`
}

type SetQualifiedStatusRequest struct {
	QualifiedStatus string `json:"qualifiedStatus" validate:"required,oneof=qualified unqualified"`
}

type FilterLeadsRequest struct {
	CreatedFrom     *time.Time `form:"createdFrom" json:"createdFrom,omitempty"`
	CreatedTo       *time.Time `form:"createdTo" json:"createdTo,omitempty"`
	NamePhone       *string    `form:"namePhone" json:"namePhone,omitempty"`
	Status          *string    `form:"status" json:"status,omitempty"`
	QualifiedStatus *string    `form:"qualifiedStatus" json:"qualifiedStatus,omitempty"`
	Advisor         *string    `form:"advisor" json:"advisor,omitempty"`
	Source          *string    `form:"source" json:"source,omitempty"`
}

type LeadResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PhoneNumber     string    `json:"phoneNumber"`
	Email           *string   `json:"email,omitempty"`
	Address         *string   `json:"address,omitempty"`
	Inquiry         string    `json:"inquiry"`
	InquiryCountry  *string   `json:"inquiryCountry,omitempty"`
	Budget          *string   `json:"budget,omitempty"`
	Detail          *string   `json:"detail,omitempty"`
	Occupation      *string   `json:"occupation,omitempty"`
	Service         *string   `json:"service,omitempty"`
	Source          *string   `json:"source,omitempty"`
	Advisor         *string   `json:"advisor,omitempty"`
	Status          string    `json:"status"`
	QualifiedStatus string    `json:"qualifiedStatus"`
	Remarketing     bool      `json:"remarketing"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ImportResultResponse struct {
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	RowErrors   []string `json:"rowErrors,omitempty"`
	ArchivedKey string   `json:"archivedKey,omitempty"`
}

type LeadCountsResponse struct {
	Total       int `json:"total"`
	Remarketing int `json:"remarketing"`
	Qualified   int `json:"qualified"`
	Unqualified int `json:"unqualified"`
}

type AddDiscussionRequest struct {
	LeadID  string `json:"leadId" validate:"required,uuid"`
	Message string `json:"message" validate:"required"`
}

type DiscussionResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"leadId"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddActivityRequest struct {
	LeadID       string     `json:"leadId" validate:"required,uuid"`
	Type         string     `json:"type" validate:"required,oneof=Discussion Follow-up 'Status Update' Email Marketing Call"`
	Status       string     `json:"status" validate:"required,oneof=Assigned Pending Completed Rejected Open 'In Progress' Closed"`
	Comment      *string    `json:"comment,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

type ActivityResponse struct {
	ID           string     `json:"id"`
	LeadID       string     `json:"leadId"`
	UserID       string     `json:"userId"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Comment      *string    `json:"comment,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
