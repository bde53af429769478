package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"portalBack/internal/models"
)

type requestStore interface {
	CreateWithTags(ctx context.Context, req models.MarketplaceRequest, tagIDs []string) (models.MarketplaceRequest, error)
	GetByID(ctx context.Context, id string) (models.MarketplaceRequest, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.MarketplaceRequest, error)
	ListAvailable(ctx context.Context, excludeCompanyID string) ([]models.MarketplaceRequest, error)
	Cancel(ctx context.Context, requestID, customerID string) error
}

type responseStore interface {
	CreateResponse(ctx context.Context, resp models.MarketplaceResponse) (models.MarketplaceResponse, error)
	GetByID(ctx context.Context, id string) (models.MarketplaceResponse, error)
	ListByRequest(ctx context.Context, requestID string) ([]models.MarketplaceResponse, error)
	Accept(ctx context.Context, resp models.MarketplaceResponse) (models.WorkOrder, bool, error)
	Decline(ctx context.Context, responseID string) error
}

type tagStore interface {
	EnsureTag(ctx context.Context, name string) (models.Tag, error)
	GetAllTags(ctx context.Context) ([]models.Tag, error)
}

type acceptNotifier interface {
	ResponseAccepted(ctx context.Context, wo models.WorkOrder) error
	NewResponse(ctx context.Context, resp models.MarketplaceResponse) error
}

type autoAcceptPolicy interface {
	MarketplaceSettings(ctx context.Context, companyID string) (models.MarketplaceSettings, error)
}

// guestProvisioner resolves a guest submission's contact details to a
// customer row, creating one when needed.
type guestProvisioner interface {
	EnsureCustomer(ctx context.Context, name, email string) (models.Customer, error)
}

type MarketplaceService struct {
	RequestRepo  requestStore
	ResponseRepo responseStore
	TagRepo      tagStore
	Customers    guestProvisioner
	Notifier     acceptNotifier
	Settings     autoAcceptPolicy
}

// SubmitRequest validates the submission form, resolves tag ids and
// persists the request with its tag links. Nothing is persisted when
// validation fails. Tag dictionary upserts are best-effort: a failed upsert
// becomes a warning and the tag is skipped.
func (s *MarketplaceService) SubmitRequest(ctx context.Context, input models.CreateRequestInput) (models.MarketplaceRequest, []string, error) {
	if err := ValidateRequestInput(input); err != nil {
		return models.MarketplaceRequest{}, nil, err
	}

	if input.Guest {
		if s.Customers == nil {
			return models.MarketplaceRequest{}, nil, models.ErrCustomerNotFound
		}
		customer, err := s.Customers.EnsureCustomer(ctx,
			strings.TrimSpace(input.GuestName), SanitizeEmail(strings.ToLower(input.GuestEmail)))
		if err != nil {
			return models.MarketplaceRequest{}, nil, err
		}
		input.CustomerID = customer.ID
	} else if strings.TrimSpace(input.CustomerID) == "" {
		return models.MarketplaceRequest{}, nil, models.ErrUnauthorized
	}

	req := models.MarketplaceRequest{
		CustomerID:          input.CustomerID,
		Title:               strings.TrimSpace(input.Title),
		Description:         strings.TrimSpace(input.Description),
		RequestType:         strings.ToUpper(defaultString(input.RequestType, models.RequestTypeStandard)),
		ServiceMode:         strings.ToLower(defaultString(input.ServiceMode, models.ServiceModeOnsite)),
		PricingPreference:   strings.ToUpper(defaultString(input.PricingPreference, models.PricingNegotiable)),
		RequiresInspection:  input.RequiresInspection,
		PreferredTimeOption: defaultString(input.PreferredTimeOption, models.TimeOptionAnytime),
		Status:              "available",
	}

	switch req.PricingPreference {
	case models.PricingFlat:
		rate, _ := strconv.ParseFloat(input.FlatRate, 64)
		req.FlatRate = &rate
	case models.PricingHourly:
		rate, _ := strconv.ParseFloat(input.HourlyRate, 64)
		req.HourlyRate = &rate
	}

	if !input.UnlimitedResponses {
		req.MaxResponses = input.MaxResponses
	}
	if req.PreferredTimeOption == models.TimeOptionSpecific {
		req.StartTime = input.StartTime
		req.EndTime = input.EndTime
	}

	var warnings []string
	var tagIDs []string
	for _, name := range input.Tags {
		tag, err := s.TagRepo.EnsureTag(ctx, name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("tag %q could not be saved: %v", name, err))
			continue
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	created, err := s.RequestRepo.CreateWithTags(ctx, req, tagIDs)
	if err != nil {
		return models.MarketplaceRequest{}, nil, err
	}
	return created, warnings, nil
}

// ValidateRequestInput is the submission gate: when it rejects, no
// persistence call is issued.
func ValidateRequestInput(input models.CreateRequestInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return &models.ValidationError{Field: "title", Message: "Please enter a title"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return &models.ValidationError{Field: "description", Message: "Please enter a description"}
	}
	if len(input.Tags) == 0 {
		return &models.ValidationError{Field: "tags", Message: "Please select at least one service tag"}
	}
	pricing := strings.ToUpper(defaultString(input.PricingPreference, models.PricingNegotiable))
	if pricing == models.PricingFlat {
		if rate, err := strconv.ParseFloat(input.FlatRate, 64); err != nil || rate <= 0 {
			return &models.ValidationError{Field: "flat_rate", Message: "Please enter a valid flat rate amount"}
		}
	}
	if pricing == models.PricingHourly {
		if rate, err := strconv.ParseFloat(input.HourlyRate, 64); err != nil || rate <= 0 {
			return &models.ValidationError{Field: "hourly_rate", Message: "Please enter a valid hourly rate"}
		}
	}
	if input.PreferredTimeOption == models.TimeOptionSpecific && input.StartTime == nil {
		return &models.ValidationError{Field: "start_time", Message: "Please select a preferred start time when choosing \"Pick Dates\""}
	}
	if input.Guest {
		if strings.TrimSpace(input.GuestName) == "" {
			return &models.ValidationError{Field: "guest_name", Message: "Please enter your name"}
		}
		if strings.TrimSpace(input.GuestEmail) == "" {
			return &models.ValidationError{Field: "guest_email", Message: "Please enter your email"}
		}
		if SanitizeEmail(input.GuestEmail) == "" {
			return &models.ValidationError{Field: "guest_email", Message: "Please enter a valid email address"}
		}
	}
	return nil
}

// SubmitResponse records a contractor response. When the request was posted
// by a company with auto-accept enabled and the proposed rate clears the
// configured ceiling, the response is accepted on the spot.
func (s *MarketplaceService) SubmitResponse(ctx context.Context, resp models.MarketplaceResponse) (models.MarketplaceResponse, []string, error) {
	created, err := s.ResponseRepo.CreateResponse(ctx, resp)
	if err != nil {
		return models.MarketplaceResponse{}, nil, err
	}

	var warnings []string
	if s.Notifier != nil {
		if err := s.Notifier.NewResponse(ctx, created); err != nil {
			warnings = append(warnings, fmt.Sprintf("response notification failed: %v", err))
		}
	}

	if accepted, w := s.tryAutoAccept(ctx, created); accepted {
		created.ResponseStatus = models.ResponseAccepted
		warnings = append(warnings, w...)
	}
	return created, warnings, nil
}

func (s *MarketplaceService) tryAutoAccept(ctx context.Context, resp models.MarketplaceResponse) (bool, []string) {
	if s.Settings == nil || resp.ProposedRate == nil {
		return false, nil
	}
	full, err := s.ResponseRepo.GetByID(ctx, resp.ID)
	if err != nil || full.Request == nil || full.Request.CompanyID == nil {
		return false, nil
	}
	cfg, err := s.Settings.MarketplaceSettings(ctx, *full.Request.CompanyID)
	if err != nil || !cfg.AutoAcceptEnabled {
		return false, nil
	}

	var ceiling *float64
	switch full.Request.PricingPreference {
	case models.PricingFlat:
		ceiling = cfg.AutoAcceptFlatMax
	case models.PricingHourly:
		ceiling = cfg.AutoAcceptHourlyMax
	}
	if ceiling == nil || *resp.ProposedRate > *ceiling {
		return false, nil
	}

	result, err := s.accept(ctx, full)
	if err != nil {
		return false, []string{fmt.Sprintf("auto-accept failed: %v", err)}
	}
	return true, result.Warnings
}

// Accept accepts a response on behalf of the owning customer. Calling it
// again for an already accepted response returns the existing work order.
func (s *MarketplaceService) Accept(ctx context.Context, responseID, customerID string) (models.AcceptResult, error) {
	resp, err := s.ResponseRepo.GetByID(ctx, responseID)
	if err != nil {
		return models.AcceptResult{}, err
	}
	if resp.Request == nil || resp.Request.CustomerID != customerID {
		return models.AcceptResult{}, models.ErrForbidden
	}
	return s.accept(ctx, resp)
}

func (s *MarketplaceService) accept(ctx context.Context, resp models.MarketplaceResponse) (models.AcceptResult, error) {
	wo, already, err := s.ResponseRepo.Accept(ctx, resp)
	if err != nil {
		return models.AcceptResult{}, err
	}

	result := models.AcceptResult{WorkOrder: wo, AlreadyApplied: already}
	if !already && s.Notifier != nil {
		if err := s.Notifier.ResponseAccepted(ctx, wo); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("acceptance notification failed: %v", err))
		}
	}
	return result, nil
}

// Decline declines a response on behalf of the owning customer.
func (s *MarketplaceService) Decline(ctx context.Context, responseID, customerID string) error {
	resp, err := s.ResponseRepo.GetByID(ctx, responseID)
	if err != nil {
		return err
	}
	if resp.Request == nil || resp.Request.CustomerID != customerID {
		return models.ErrForbidden
	}
	return s.ResponseRepo.Decline(ctx, responseID)
}

func (s *MarketplaceService) GetRequest(ctx context.Context, id string) (models.MarketplaceRequest, error) {
	req, err := s.RequestRepo.GetByID(ctx, id)
	if err != nil {
		return models.MarketplaceRequest{}, err
	}
	req.Responses, err = s.ResponseRepo.ListByRequest(ctx, id)
	return req, err
}

func (s *MarketplaceService) ListRequestsByCustomer(ctx context.Context, customerID string) ([]models.MarketplaceRequest, error) {
	reqs, err := s.RequestRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].Responses, err = s.ResponseRepo.ListByRequest(ctx, reqs[i].ID); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}

func (s *MarketplaceService) BrowseRequests(ctx context.Context, excludeCompanyID string, tags, pricing, requestTypes []string) ([]models.MarketplaceRequest, error) {
	reqs, err := s.RequestRepo.ListAvailable(ctx, excludeCompanyID)
	if err != nil {
		return nil, err
	}
	return filterRequests(reqs, tags, pricing, requestTypes), nil
}

// filterRequests applies the browse filters: any-of tag names, pricing
// preferences and request types.
func filterRequests(reqs []models.MarketplaceRequest, tags, pricing, requestTypes []string) []models.MarketplaceRequest {
	desired := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		desired[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	var out []models.MarketplaceRequest
	for _, req := range reqs {
		if len(desired) > 0 {
			matched := false
			for _, tag := range req.Tags {
				if _, ok := desired[strings.ToLower(tag.Name)]; ok {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(requestTypes) > 0 && !containsString(requestTypes, req.RequestType) {
			continue
		}
		if len(pricing) > 0 && !containsString(pricing, req.PricingPreference) {
			continue
		}
		out = append(out, req)
	}
	return out
}

func (s *MarketplaceService) CancelRequest(ctx context.Context, requestID, customerID string) error {
	return s.RequestRepo.Cancel(ctx, requestID, customerID)
}

func (s *MarketplaceService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	return s.TagRepo.GetAllTags(ctx)
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
