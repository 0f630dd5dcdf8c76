package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"backoffice_portal_backend/internal/auth/rbac"
	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/internal/leads/repository"
	"backoffice_portal_backend/internal/leads/transport"
	"backoffice_portal_backend/platform/apperr"
	"backoffice_portal_backend/platform/logger"
	"backoffice_portal_backend/platform/phone"
)

// Caller identifies the requesting user for visibility scoping.
type Caller struct {
	UserID uuid.UUID
	Role   rbac.Role
}

// Service provides business logic for leads, activities, and discussions.
type Service struct {
	repo     repository.Repository
	bus      events.Bus
	archiver ImportArchiver
	log      *logger.Logger
}

// New creates a new leads service. The archiver may be nil when object
// storage is not configured; imports then skip archiving.
func New(repo repository.Repository, bus events.Bus, archiver ImportArchiver, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, archiver: archiver, log: log}
}

// scopeFor maps the caller's role onto a repository scope.
// Superadmin and admin see everything; everyone else sees assigned leads.
func scopeFor(caller Caller) repository.Scope {
	if caller.Role == rbac.RoleSuperAdmin || caller.Role == rbac.RoleAdmin {
		return repository.Scope{All: true}
	}
	return repository.Scope{UserID: caller.UserID}
}

// Create inserts a single lead with the caller as creator.
func (s *Service) Create(ctx context.Context, caller Caller, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:           req.Name,
		PhoneNumber:    phone.NormalizeE164(req.PhoneNumber),
		Email:          req.Email,
		Address:        req.Address,
		Inquiry:        req.Inquiry,
		InquiryCountry: req.InquiryCountry,
		Budget:         req.Budget,
		Detail:         req.Detail,
		Occupation:     req.Occupation,
		Service:        req.Service,
		Source:         req.Source,
		Advisor:        req.Advisor,
		Status:         req.Status,
		CreatedBy:      caller.UserID,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      lead.ID,
		Name:        lead.Name,
		PhoneNumber: lead.PhoneNumber,
		Inquiry:     lead.Inquiry,
		Source:      deref(lead.Source),
	})

	s.log.Info("lead created", "id", lead.ID, "createdBy", caller.UserID)
	return toLeadResponse(lead), nil
}

// List returns non-remarketing leads visible to the caller.
func (s *Service) List(ctx context.Context, caller Caller) ([]transport.LeadResponse, error) {
	leads, err := s.repo.List(ctx, scopeFor(caller))
	if err != nil {
		return nil, err
	}
	return toLeadResponses(leads), nil
}

// ListRemarketing returns remarketing leads visible to the caller.
func (s *Service) ListRemarketing(ctx context.Context, caller Caller) ([]transport.LeadResponse, error) {
	leads, err := s.repo.ListRemarketing(ctx, scopeFor(caller))
	if err != nil {
		return nil, err
	}
	return toLeadResponses(leads), nil
}

// Filter returns leads matching the conjunctive filters, scoped to the caller.
func (s *Service) Filter(ctx context.Context, caller Caller, req transport.FilterLeadsRequest) ([]transport.LeadResponse, error) {
	leads, err := s.repo.Filter(ctx, scopeFor(caller), repository.FilterParams{
		CreatedFrom:     req.CreatedFrom,
		CreatedTo:       req.CreatedTo,
		NamePhone:       req.NamePhone,
		Status:          req.Status,
		QualifiedStatus: req.QualifiedStatus,
		Advisor:         req.Advisor,
		Source:          req.Source,
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponses(leads), nil
}

// Update applies a partial update to a lead.
func (s *Service) Update(ctx context.Context, leadID uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateLeadParams{
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		Inquiry:        req.Inquiry,
		InquiryCountry: req.InquiryCountry,
		Budget:         req.Budget,
		Detail:         req.Detail,
		Occupation:     req.Occupation,
		Service:        req.Service,
		Source:         req.Source,
		Advisor:        req.Advisor,
		Status:         req.Status,
	}
	if req.PhoneNumber != nil {
		normalized := phone.NormalizeE164(*req.PhoneNumber)
		params.PhoneNumber = &normalized
	}

	lead, err := s.repo.Update(ctx, leadID, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// SetQualifiedStatus updates a lead's qualification flag.
func (s *Service) SetQualifiedStatus(ctx context.Context, leadID uuid.UUID, qualifiedStatus string) (transport.LeadResponse, error) {
	lead, err := s.repo.SetQualifiedStatus(ctx, leadID, qualifiedStatus)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// ToggleRemarketing flips a lead's remarketing flag.
func (s *Service) ToggleRemarketing(ctx context.Context, leadID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.ToggleRemarketing(ctx, leadID)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// Counts returns the dashboard counters, scoped to the caller.
// The four counts run concurrently.
func (s *Service) Counts(ctx context.Context, caller Caller) (transport.LeadCountsResponse, error) {
	scope := scopeFor(caller)
	var counts transport.LeadCountsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Total, err = s.repo.CountTotal(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		counts.Remarketing, err = s.repo.CountRemarketing(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		counts.Qualified, err = s.repo.CountQualified(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		counts.Unqualified, err = s.repo.CountUnqualified(gctx, scope)
		return err
	})

	if err := g.Wait(); err != nil {
		return transport.LeadCountsResponse{}, err
	}
	return counts, nil
}

// AddDiscussion appends a discussion message to a lead.
func (s *Service) AddDiscussion(ctx context.Context, userID uuid.UUID, req transport.AddDiscussionRequest) (transport.DiscussionResponse, error) {
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return transport.DiscussionResponse{}, apperr.Validation("invalid lead ID")
	}

	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		return transport.DiscussionResponse{}, err
	}

	discussion, err := s.repo.CreateDiscussion(ctx, leadID, userID, req.Message)
	if err != nil {
		return transport.DiscussionResponse{}, err
	}
	return toDiscussionResponse(discussion), nil
}

// ListDiscussions returns a lead's discussions, newest first.
func (s *Service) ListDiscussions(ctx context.Context, leadID uuid.UUID) ([]transport.DiscussionResponse, error) {
	discussions, err := s.repo.ListDiscussionsByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	results := make([]transport.DiscussionResponse, 0, len(discussions))
	for _, discussion := range discussions {
		results = append(results, toDiscussionResponse(discussion))
	}
	return results, nil
}

// AddActivity appends one activity row. Every call creates a new row;
// previous activities for the same lead are never modified.
func (s *Service) AddActivity(ctx context.Context, userID uuid.UUID, req transport.AddActivityRequest) (transport.ActivityResponse, error) {
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return transport.ActivityResponse{}, apperr.Validation("invalid lead ID")
	}

	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		return transport.ActivityResponse{}, err
	}

	activity, err := s.repo.CreateActivity(ctx, repository.CreateActivityParams{
		LeadID:       leadID,
		UserID:       userID,
		Type:         req.Type,
		Status:       req.Status,
		Comment:      req.Comment,
		FollowUpDate: req.FollowUpDate,
	})
	if err != nil {
		return transport.ActivityResponse{}, err
	}
	return toActivityResponse(activity), nil
}

// ListActivities returns a lead's activities, newest first.
func (s *Service) ListActivities(ctx context.Context, leadID uuid.UUID) ([]transport.ActivityResponse, error) {
	activities, err := s.repo.ListActivitiesByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

// MyFollowUps returns all activities created by the caller, newest first.
func (s *Service) MyFollowUps(ctx context.Context, userID uuid.UUID) ([]transport.ActivityResponse, error) {
	activities, err := s.repo.ListActivitiesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:              lead.ID.String(),
		Name:            lead.Name,
		PhoneNumber:     lead.PhoneNumber,
		Email:           lead.Email,
		Address:         lead.Address,
		Inquiry:         lead.Inquiry,
		InquiryCountry:  lead.InquiryCountry,
		Budget:          lead.Budget,
		Detail:          lead.Detail,
		Occupation:      lead.Occupation,
		Service:         lead.Service,
		Source:          lead.Source,
		Advisor:         lead.Advisor,
		Status:          lead.Status,
		QualifiedStatus: lead.QualifiedStatus,
		Remarketing:     lead.Remarketing,
		CreatedBy:       lead.CreatedBy.String(),
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
}

func toLeadResponses(leads []repository.Lead) []transport.LeadResponse {
	results := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		results = append(results, toLeadResponse(lead))
	}
	return results
}

func toDiscussionResponse(discussion repository.Discussion) transport.DiscussionResponse {
	return transport.DiscussionResponse{
		ID:        discussion.ID.String(),
		LeadID:    discussion.LeadID.String(),
		UserID:    discussion.UserID.String(),
		Message:   discussion.Message,
		CreatedAt: discussion.CreatedAt,
	}
}

func toActivityResponse(activity repository.Activity) transport.ActivityResponse {
	return transport.ActivityResponse{
		ID:           activity.ID.String(),
		LeadID:       activity.LeadID.String(),
		UserID:       activity.UserID.String(),
		Type:         activity.Type,
		Status:       activity.Status,
		Comment:      activity.Comment,
		FollowUpDate: activity.FollowUpDate,
		CreatedAt:    activity.CreatedAt,
	}
}

func toActivityResponses(activities []repository.Activity) []transport.ActivityResponse {
	results := make([]transport.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		results = append(results, toActivityResponse(activity))
	}
	return results
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
