package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"portalBack/internal/models"
)

type stubRequestStore struct {
	created    []models.MarketplaceRequest
	createdTag [][]string
}

func (s *stubRequestStore) CreateWithTags(ctx context.Context, req models.MarketplaceRequest, tagIDs []string) (models.MarketplaceRequest, error) {
	req.ID = "req-1"
	req.CreatedAt = time.Now()
	s.created = append(s.created, req)
	s.createdTag = append(s.createdTag, tagIDs)
	return req, nil
}

func (s *stubRequestStore) GetByID(ctx context.Context, id string) (models.MarketplaceRequest, error) {
	return models.MarketplaceRequest{ID: id}, nil
}

func (s *stubRequestStore) ListByCustomer(ctx context.Context, customerID string) ([]models.MarketplaceRequest, error) {
	return nil, nil
}

func (s *stubRequestStore) ListAvailable(ctx context.Context, excludeCompanyID string) ([]models.MarketplaceRequest, error) {
	return nil, nil
}

func (s *stubRequestStore) Cancel(ctx context.Context, requestID, customerID string) error {
	return nil
}

type stubResponseStore struct {
	responses    map[string]models.MarketplaceResponse
	accepted     []string
	declined     []string
	workOrder    models.WorkOrder
	already      bool
	maxResponses int
	created      int
}

func (s *stubResponseStore) CreateResponse(ctx context.Context, resp models.MarketplaceResponse) (models.MarketplaceResponse, error) {
	if s.maxResponses > 0 && s.created >= s.maxResponses {
		return models.MarketplaceResponse{}, models.ErrResponseLimit
	}
	s.created++
	resp.ID = "resp-new"
	return resp, nil
}

func (s *stubResponseStore) GetByID(ctx context.Context, id string) (models.MarketplaceResponse, error) {
	resp, ok := s.responses[id]
	if !ok {
		return models.MarketplaceResponse{}, models.ErrNoRecord
	}
	return resp, nil
}

func (s *stubResponseStore) ListByRequest(ctx context.Context, requestID string) ([]models.MarketplaceResponse, error) {
	return nil, nil
}

func (s *stubResponseStore) Accept(ctx context.Context, resp models.MarketplaceResponse) (models.WorkOrder, bool, error) {
	s.accepted = append(s.accepted, resp.ID)
	return s.workOrder, s.already, nil
}

func (s *stubResponseStore) Decline(ctx context.Context, responseID string) error {
	s.declined = append(s.declined, responseID)
	return nil
}

type stubTagStore struct{}

func (stubTagStore) EnsureTag(ctx context.Context, name string) (models.Tag, error) {
	return models.Tag{ID: "tag-" + name, Name: name}, nil
}

func (stubTagStore) GetAllTags(ctx context.Context) ([]models.Tag, error) { return nil, nil }

func newMarketplaceService(reqs *stubRequestStore, resps *stubResponseStore) *MarketplaceService {
	return &MarketplaceService{
		RequestRepo:  reqs,
		ResponseRepo: resps,
		TagRepo:      stubTagStore{},
	}
}

func TestSubmitRequestValidationGate(t *testing.T) {
	reqs := &stubRequestStore{}
	svc := newMarketplaceService(reqs, &stubResponseStore{})

	cases := []models.CreateRequestInput{
		{Description: "Kitchen sink drips", Tags: []string{"plumbing"}},
		{Title: "Fix leaky faucet", Tags: []string{"plumbing"}},
		{Title: "Fix leaky faucet", Description: "Kitchen sink drips"},
		{Title: "Fix", Description: "Drip", Tags: []string{"plumbing"}, PricingPreference: "FLAT", FlatRate: "0"},
		{Title: "Fix", Description: "Drip", Tags: []string{"plumbing"}, PricingPreference: "HOURLY", HourlyRate: "-5"},
		{Title: "Fix", Description: "Drip", Tags: []string{"plumbing"}, PreferredTimeOption: "specific"},
		{Title: "Fix", Description: "Drip", Tags: []string{"plumbing"}, Guest: true, GuestEmail: "a@b.co"},
	}
	for i, input := range cases {
		_, _, err := svc.SubmitRequest(context.Background(), input)
		if err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}
	if len(reqs.created) != 0 {
		t.Fatalf("expected no persistence calls, got %d", len(reqs.created))
	}
}

func TestSubmitRequestPricingFields(t *testing.T) {
	reqs := &stubRequestStore{}
	svc := newMarketplaceService(reqs, &stubResponseStore{})

	_, _, err := svc.SubmitRequest(context.Background(), models.CreateRequestInput{
		CustomerID:        "cust-1",
		Title:             "Install outlet",
		Description:       "Garage wall",
		Tags:              []string{"electrical"},
		PricingPreference: "FLAT",
		FlatRate:          "150.50",
	})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	created := reqs.created[0]
	if created.FlatRate == nil || *created.FlatRate != 150.50 {
		t.Fatalf("expected flat_rate 150.50, got %v", created.FlatRate)
	}
	if created.HourlyRate != nil {
		t.Fatalf("expected hourly_rate nil for FLAT, got %v", *created.HourlyRate)
	}

	_, _, err = svc.SubmitRequest(context.Background(), models.CreateRequestInput{
		CustomerID:        "cust-1",
		Title:             "Paint fence",
		Description:       "Back yard",
		Tags:              []string{"painting"},
		PricingPreference: "HOURLY",
		HourlyRate:        "45",
	})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	created = reqs.created[1]
	if created.HourlyRate == nil || *created.HourlyRate != 45 {
		t.Fatalf("expected hourly_rate 45, got %v", created.HourlyRate)
	}
	if created.FlatRate != nil {
		t.Fatalf("expected flat_rate nil for HOURLY, got %v", *created.FlatRate)
	}
}

func TestSubmitRequestNegotiable(t *testing.T) {
	reqs := &stubRequestStore{}
	svc := newMarketplaceService(reqs, &stubResponseStore{})

	_, _, err := svc.SubmitRequest(context.Background(), models.CreateRequestInput{
		CustomerID:        "cust-1",
		Title:             "Fix leaky faucet",
		Description:       "Kitchen sink drips",
		Tags:              []string{"plumbing"},
		RequestType:       "STANDARD",
		ServiceMode:       "onsite",
		PricingPreference: "NEGOTIABLE",
	})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	created := reqs.created[0]
	if created.PricingPreference != models.PricingNegotiable {
		t.Fatalf("expected NEGOTIABLE, got %s", created.PricingPreference)
	}
	if created.FlatRate != nil || created.HourlyRate != nil {
		t.Fatal("expected both rates nil for NEGOTIABLE")
	}
	if len(reqs.createdTag[0]) != 1 || reqs.createdTag[0][0] != "tag-plumbing" {
		t.Fatalf("expected one plumbing tag link, got %v", reqs.createdTag[0])
	}
}

type stubCustomerStore struct {
	ensured []string
}

func (s *stubCustomerStore) EnsureCustomer(ctx context.Context, name, email string) (models.Customer, error) {
	s.ensured = append(s.ensured, email)
	return models.Customer{ID: "cust-guest", Name: name, Email: email}, nil
}

func TestSubmitRequestGuestProvisionsCustomer(t *testing.T) {
	reqs := &stubRequestStore{}
	customers := &stubCustomerStore{}
	svc := newMarketplaceService(reqs, &stubResponseStore{})
	svc.Customers = customers

	_, _, err := svc.SubmitRequest(context.Background(), models.CreateRequestInput{
		Title:       "Clean gutters",
		Description: "Two storey house",
		Tags:        []string{"cleaning"},
		Guest:       true,
		GuestName:   "Sam Carter",
		GuestEmail:  "Sam.Carter@Example.com",
	})
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if len(customers.ensured) != 1 || customers.ensured[0] != "sam.carter@example.com" {
		t.Fatalf("expected lowercased guest email provisioned, got %v", customers.ensured)
	}
	if reqs.created[0].CustomerID != "cust-guest" {
		t.Fatalf("expected request owned by provisioned customer, got %q", reqs.created[0].CustomerID)
	}
}

func TestAcceptUnknownResponse(t *testing.T) {
	resps := &stubResponseStore{responses: map[string]models.MarketplaceResponse{}}
	svc := newMarketplaceService(&stubRequestStore{}, resps)

	_, err := svc.Accept(context.Background(), "missing", "cust-1")
	if err != models.ErrNoRecord {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
	if len(resps.accepted) != 0 {
		t.Fatal("expected no accept call for unknown response")
	}
}

func TestAcceptCreatesWorkOrder(t *testing.T) {
	resps := &stubResponseStore{
		responses: map[string]models.MarketplaceResponse{
			"R1": {
				ID:        "R1",
				RequestID: "Q1",
				CompanyID: "comp-1",
				Request:   &models.MarketplaceRequest{ID: "Q1", CustomerID: "C1"},
			},
		},
		workOrder: models.WorkOrder{
			ID:                    "wo-1",
			MarketplaceRequestID:  "Q1",
			MarketplaceResponseID: "R1",
		},
	}
	svc := newMarketplaceService(&stubRequestStore{}, resps)

	result, err := svc.Accept(context.Background(), "R1", "C1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if result.WorkOrder.MarketplaceResponseID != "R1" || result.WorkOrder.MarketplaceRequestID != "Q1" {
		t.Fatalf("work order not linked to response/request: %+v", result.WorkOrder)
	}
	if result.AlreadyApplied {
		t.Fatal("expected fresh acceptance")
	}
	if len(resps.accepted) != 1 {
		t.Fatalf("expected one accept call, got %d", len(resps.accepted))
	}
}

func TestAcceptForbiddenForOtherCustomer(t *testing.T) {
	resps := &stubResponseStore{
		responses: map[string]models.MarketplaceResponse{
			"R1": {ID: "R1", RequestID: "Q1", Request: &models.MarketplaceRequest{CustomerID: "C1"}},
		},
	}
	svc := newMarketplaceService(&stubRequestStore{}, resps)

	_, err := svc.Accept(context.Background(), "R1", "C2")
	if err != models.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(resps.accepted) != 0 {
		t.Fatal("expected no accept call for foreign response")
	}
}

func TestAcceptAlreadyApplied(t *testing.T) {
	resps := &stubResponseStore{
		responses: map[string]models.MarketplaceResponse{
			"R1": {ID: "R1", RequestID: "Q1", Request: &models.MarketplaceRequest{CustomerID: "C1"}},
		},
		workOrder: models.WorkOrder{ID: "wo-1", MarketplaceResponseID: "R1"},
		already:   true,
	}
	svc := newMarketplaceService(&stubRequestStore{}, resps)

	result, err := svc.Accept(context.Background(), "R1", "C1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if !result.AlreadyApplied {
		t.Fatal("expected already-applied result")
	}
	if result.WorkOrder.ID != "wo-1" {
		t.Fatalf("expected existing work order, got %+v", result.WorkOrder)
	}
}

func TestDecline(t *testing.T) {
	resps := &stubResponseStore{
		responses: map[string]models.MarketplaceResponse{
			"R2": {ID: "R2", RequestID: "Q1", Request: &models.MarketplaceRequest{CustomerID: "C1"}},
		},
	}
	svc := newMarketplaceService(&stubRequestStore{}, resps)

	if err := svc.Decline(context.Background(), "R2", "C1"); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if len(resps.declined) != 1 || resps.declined[0] != "R2" {
		t.Fatalf("expected decline for R2, got %v", resps.declined)
	}
	if len(resps.accepted) != 0 {
		t.Fatal("decline must not accept anything")
	}
}

func TestSubmitRequestRequiresCustomer(t *testing.T) {
	reqs := &stubRequestStore{}
	svc := newMarketplaceService(reqs, &stubResponseStore{})

	_, _, err := svc.SubmitRequest(context.Background(), models.CreateRequestInput{
		Title:       "Fix leaky faucet",
		Description: "Kitchen sink drips",
		Tags:        []string{"plumbing"},
	})
	if err != models.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(reqs.created) != 0 {
		t.Fatal("expected no persistence call without a customer")
	}
}

func TestSubmitResponseCapReached(t *testing.T) {
	resps := &stubResponseStore{maxResponses: 1}
	svc := newMarketplaceService(&stubRequestStore{}, resps)

	first := models.MarketplaceResponse{RequestID: "Q1", CompanyID: "comp-1"}
	if _, _, err := svc.SubmitResponse(context.Background(), first); err != nil {
		t.Fatalf("first SubmitResponse: %v", err)
	}

	second := models.MarketplaceResponse{RequestID: "Q1", CompanyID: "comp-2"}
	_, _, err := svc.SubmitResponse(context.Background(), second)
	if err != models.ErrResponseLimit {
		t.Fatalf("expected ErrResponseLimit, got %v", err)
	}
	if resps.created != 1 {
		t.Fatalf("expected exactly one stored response, got %d", resps.created)
	}
}

type stubSettings struct {
	cfg models.MarketplaceSettings
}

func (s stubSettings) MarketplaceSettings(ctx context.Context, companyID string) (models.MarketplaceSettings, error) {
	return s.cfg, nil
}

func autoAcceptService(pricing string, rate float64, cfg models.MarketplaceSettings) (*MarketplaceService, *stubResponseStore) {
	companyID := "co-owner"
	resps := &stubResponseStore{
		responses: map[string]models.MarketplaceResponse{
			"resp-new": {
				ID:           "resp-new",
				RequestID:    "Q1",
				CompanyID:    "comp-1",
				ProposedRate: &rate,
				Request: &models.MarketplaceRequest{
					ID:                "Q1",
					CustomerID:        "C1",
					CompanyID:         &companyID,
					PricingPreference: pricing,
				},
			},
		},
		workOrder: models.WorkOrder{ID: "wo-auto", MarketplaceResponseID: "resp-new"},
	}
	svc := newMarketplaceService(&stubRequestStore{}, resps)
	svc.Settings = stubSettings{cfg: cfg}
	return svc, resps
}

func TestSubmitResponseAutoAcceptUnderCeiling(t *testing.T) {
	flatMax := 100.0
	svc, resps := autoAcceptService(models.PricingFlat, 90, models.MarketplaceSettings{
		AutoAcceptEnabled: true,
		AutoAcceptFlatMax: &flatMax,
	})

	rate := 90.0
	created, _, err := svc.SubmitResponse(context.Background(), models.MarketplaceResponse{
		RequestID: "Q1", CompanyID: "comp-1", ProposedRate: &rate,
	})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if created.ResponseStatus != models.ResponseAccepted {
		t.Fatalf("expected auto-accepted response, got status %q", created.ResponseStatus)
	}
	if len(resps.accepted) != 1 || resps.accepted[0] != "resp-new" {
		t.Fatalf("expected accept call for new response, got %v", resps.accepted)
	}
}

func TestSubmitResponseAutoAcceptHourlyCeiling(t *testing.T) {
	hourlyMax := 60.0
	svc, resps := autoAcceptService(models.PricingHourly, 55, models.MarketplaceSettings{
		AutoAcceptEnabled:   true,
		AutoAcceptHourlyMax: &hourlyMax,
	})

	rate := 55.0
	created, _, err := svc.SubmitResponse(context.Background(), models.MarketplaceResponse{
		RequestID: "Q1", CompanyID: "comp-1", ProposedRate: &rate,
	})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if created.ResponseStatus != models.ResponseAccepted {
		t.Fatalf("expected auto-accepted response, got status %q", created.ResponseStatus)
	}
	if len(resps.accepted) != 1 {
		t.Fatalf("expected one accept call, got %d", len(resps.accepted))
	}
}

func TestSubmitResponseAutoAcceptOverCeiling(t *testing.T) {
	flatMax := 100.0
	svc, resps := autoAcceptService(models.PricingFlat, 150, models.MarketplaceSettings{
		AutoAcceptEnabled: true,
		AutoAcceptFlatMax: &flatMax,
	})

	rate := 150.0
	created, _, err := svc.SubmitResponse(context.Background(), models.MarketplaceResponse{
		RequestID: "Q1", CompanyID: "comp-1", ProposedRate: &rate,
	})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if created.ResponseStatus == models.ResponseAccepted {
		t.Fatal("expected no auto-accept above the ceiling")
	}
	if len(resps.accepted) != 0 {
		t.Fatalf("expected no accept call, got %v", resps.accepted)
	}
}

func TestSubmitResponseAutoAcceptSkipsNegotiable(t *testing.T) {
	flatMax := 100.0
	svc, resps := autoAcceptService(models.PricingNegotiable, 50, models.MarketplaceSettings{
		AutoAcceptEnabled: true,
		AutoAcceptFlatMax: &flatMax,
	})

	rate := 50.0
	created, _, err := svc.SubmitResponse(context.Background(), models.MarketplaceResponse{
		RequestID: "Q1", CompanyID: "comp-1", ProposedRate: &rate,
	})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if created.ResponseStatus == models.ResponseAccepted {
		t.Fatal("negotiable requests must never auto-accept")
	}
	if len(resps.accepted) != 0 {
		t.Fatalf("expected no accept call, got %v", resps.accepted)
	}
}

func TestSubmitResponseAutoAcceptDisabled(t *testing.T) {
	flatMax := 100.0
	svc, resps := autoAcceptService(models.PricingFlat, 50, models.MarketplaceSettings{
		AutoAcceptEnabled: false,
		AutoAcceptFlatMax: &flatMax,
	})

	rate := 50.0
	created, _, err := svc.SubmitResponse(context.Background(), models.MarketplaceResponse{
		RequestID: "Q1", CompanyID: "comp-1", ProposedRate: &rate,
	})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if created.ResponseStatus == models.ResponseAccepted {
		t.Fatal("expected no auto-accept while disabled")
	}
	if len(resps.accepted) != 0 {
		t.Fatalf("expected no accept call, got %v", resps.accepted)
	}
}
