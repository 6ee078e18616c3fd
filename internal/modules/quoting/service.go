package quoting

import (
	"context"
	"fmt"
	"time"

	"thru-backend/internal/models"
	"thru-backend/internal/modules/dispatch"
	"thru-backend/internal/modules/matching"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequestResult is what the client gets back after opening a
// request: the immutable payload that was dispatched and the candidate
// shortlist it went to.
type CreateRequestResult struct {
	Request    models.VendorRequestPayload        `json:"request"`
	Candidates []models.RouteBasedVendorCandidate `json:"candidates"`
	Status     models.RequestStatus               `json:"status"`
}

// ServiceInterface defines the offer collection and aggregation flow.
type ServiceInterface interface {
	CreateRequest(ctx context.Context, req models.CreateRequestRequest) (*CreateRequestResult, error)
	SubmitResponse(ctx context.Context, vendorID string, payload models.VendorResponsePayload) error
	AggregatedOffers(ctx context.Context, requestID string) ([]models.AggregatedOffer, models.RequestStatus, error)
	CloseRequest(ctx context.Context, requestID string) error
	AcceptRequest(ctx context.Context, requestID, vendorID string) error
	WatchOffers(requestID string) (<-chan struct{}, func(), error)
}

// Service wires the candidate filter, the dispatcher and the collection
// window together.
type Service struct {
	matcher    matching.ServiceInterface
	dispatcher dispatch.DispatcherInterface
	collector  *Collector
	window     time.Duration
	logger     *zap.Logger
}

// NewService creates a new quoting service. window is the default offer
// collection window applied when the client does not pick one.
func NewService(
	matcher matching.ServiceInterface,
	dispatcher dispatch.DispatcherInterface,
	collector *Collector,
	window time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		matcher:    matcher,
		dispatcher: dispatcher,
		collector:  collector,
		window:     window,
		logger:     logger,
	}
}

// CreateRequest normalizes the cart, matches candidate vendors along the
// route, opens the collection window and dispatches the request. The
// payload is immutable from here on.
func (s *Service) CreateRequest(ctx context.Context, req models.CreateRequestRequest) (*CreateRequestResult, error) {
	route, err := models.NewRoute(req.Polyline, req.DetourToleranceKm, req.TransportMode)
	if err != nil {
		return nil, err
	}

	items := NormalizeItems(req.Items)
	for i := range items {
		if items[i].RequestItemID == "" {
			items[i].RequestItemID = uuid.New().String()
		}
	}

	window := s.window
	if req.WindowMinutes > 0 {
		window = time.Duration(req.WindowMinutes) * time.Minute
	}

	payload := models.VendorRequestPayload{
		RequestID: uuid.New().String(),
		UserID:    req.UserID,
		Location: models.LatLng{
			Lat: route.Start.Latitude,
			Lng: route.Start.Longitude,
		},
		Items:       items,
		DeadlineUTC: time.Now().UTC().Add(window),
	}

	if result := ValidateRequestPayload(payload); !result.IsValid {
		return nil, fmt.Errorf("service.CreateRequest: invalid payload: %v", result.Errors)
	}

	storeTypes := req.StoreTypes
	if len(storeTypes) == 0 {
		storeTypes = []models.StoreType{models.StoreGrocery, models.StoreSupermarket}
	}

	candidates, err := s.matcher.FindCandidateVendors(ctx, route, storeTypes)
	if err != nil {
		return nil, fmt.Errorf("service.CreateRequest: %w", err)
	}

	s.collector.Open(payload)

	if err := s.dispatcher.Dispatch(ctx, payload, candidates); err != nil {
		s.logger.Warn("dispatch incomplete", zap.String("request_id", payload.RequestID), zap.Error(err))
	}

	return &CreateRequestResult{
		Request:    payload,
		Candidates: candidates,
		Status:     models.RequestCollecting,
	}, nil
}

// SubmitResponse admits one vendor's validated reply into the window.
// vendorID comes from the vendor's dispatch token, not from the payload,
// so a vendor cannot submit on another vendor's behalf.
func (s *Service) SubmitResponse(ctx context.Context, vendorID string, payload models.VendorResponsePayload) error {
	if payload.VendorID != vendorID {
		return models.ErrRequestMismatch
	}
	payload.SubmittedAt = time.Now().UTC()

	if err := s.collector.Submit(payload); err != nil {
		return err
	}

	s.logger.Info("vendor response accepted",
		zap.String("request_id", payload.RequestID),
		zap.String("vendor_id", vendorID),
		zap.Int("offers", len(payload.Offers)))
	return nil
}

// AggregatedOffers re-runs aggregation against the full current response
// set and returns the ranked quotes.
func (s *Service) AggregatedOffers(ctx context.Context, requestID string) ([]models.AggregatedOffer, models.RequestStatus, error) {
	request, err := s.collector.Request(requestID)
	if err != nil {
		return nil, "", err
	}
	responses, err := s.collector.Responses(requestID)
	if err != nil {
		return nil, "", err
	}
	status, err := s.collector.Status(requestID)
	if err != nil {
		return nil, "", err
	}

	names := make(map[string]string, len(responses))
	for _, resp := range responses {
		names[resp.VendorID] = s.matcher.VendorName(ctx, resp.VendorID)
	}

	return AggregateOffers(request, responses, names), status, nil
}

// CloseRequest ends the collection phase ahead of the deadline.
func (s *Service) CloseRequest(ctx context.Context, requestID string) error {
	return s.collector.Close(requestID)
}

// AcceptRequest marks the request accepted once the user picks a vendor
// and sends that vendor its order confirmation. The accepted vendor must
// have an effective offer on the request.
func (s *Service) AcceptRequest(ctx context.Context, requestID, vendorID string) error {
	offers, _, err := s.AggregatedOffers(ctx, requestID)
	if err != nil {
		return err
	}

	var accepted *models.AggregatedOffer
	for i := range offers {
		if offers[i].VendorID == vendorID {
			accepted = &offers[i]
			break
		}
	}
	if accepted == nil {
		return models.ErrNotFound
	}

	if err := s.collector.Accept(requestID); err != nil {
		return err
	}

	if err := s.dispatcher.ConfirmOrder(ctx, requestID, *accepted); err != nil {
		s.logger.Warn("order confirmation incomplete",
			zap.String("request_id", requestID),
			zap.String("vendor_id", vendorID),
			zap.Error(err))
	}
	return nil
}

// WatchOffers exposes the collector's new-response notifications for
// streaming consumers.
func (s *Service) WatchOffers(requestID string) (<-chan struct{}, func(), error) {
	return s.collector.Watch(requestID)
}
