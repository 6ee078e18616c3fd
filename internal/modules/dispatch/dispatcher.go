// Package dispatch fans a vendor request out to matched candidates over
// an external notification channel.
package dispatch

import (
	"context"
	"fmt"

	"thru-backend/internal/models"
	"thru-backend/internal/modules/matching"
	"thru-backend/pkg/notify"
	"thru-backend/pkg/utils"

	"go.uber.org/zap"
)

// DispatcherInterface hands a request plus its candidate shortlist to the
// delivery channel. Collecting the replies happens elsewhere; dispatch is
// fire-and-forget per vendor.
type DispatcherInterface interface {
	Dispatch(ctx context.Context, request models.VendorRequestPayload, candidates []models.RouteBasedVendorCandidate) error
	// ConfirmOrder tells the accepted vendor that the user picked its offer.
	ConfirmOrder(ctx context.Context, requestID string, offer models.AggregatedOffer) error
}

// Service implements DispatcherInterface over the notify sender.
type Service struct {
	vendors         matching.VendorSourceInterface
	sender          notify.SenderInterface
	templates       *notify.TemplateManager
	jwtSecret       string
	responseBaseURL string
	logger          *zap.Logger
}

// NewService creates a new dispatch service.
func NewService(
	vendors matching.VendorSourceInterface,
	sender notify.SenderInterface,
	templates *notify.TemplateManager,
	jwtSecret string,
	responseBaseURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		vendors:         vendors,
		sender:          sender,
		templates:       templates,
		jwtSecret:       jwtSecret,
		responseBaseURL: responseBaseURL,
		logger:          logger,
	}
}

// Dispatch notifies every candidate vendor. A single vendor failing to
// receive the notice does not abort the fan-out; the request only fails
// when no vendor could be reached at all.
func (s *Service) Dispatch(ctx context.Context, request models.VendorRequestPayload, candidates []models.RouteBasedVendorCandidate) error {
	if len(candidates) == 0 {
		s.logger.Warn("dispatch with no candidates", zap.String("request_id", request.RequestID))
		return nil
	}

	sent := 0
	for _, candidate := range candidates {
		if err := s.notifyVendor(ctx, request, candidate); err != nil {
			s.logger.Warn("failed to notify vendor",
				zap.String("request_id", request.RequestID),
				zap.String("vendor_id", candidate.ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("request dispatched",
		zap.String("request_id", request.RequestID),
		zap.Int("notified", sent),
		zap.Int("candidates", len(candidates)))

	if sent == 0 {
		return fmt.Errorf("service.Dispatch: no vendor could be notified for request %s", request.RequestID)
	}
	return nil
}

// ConfirmOrder sends the order confirmation notice to the vendor whose
// offer the user accepted.
func (s *Service) ConfirmOrder(ctx context.Context, requestID string, offer models.AggregatedOffer) error {
	vendor, err := s.vendors.FindByID(ctx, offer.VendorID)
	if err != nil {
		return fmt.Errorf("service.ConfirmOrder lookup: %w", err)
	}
	if vendor.Email == "" {
		return fmt.Errorf("service.ConfirmOrder: vendor %s has no contact address", vendor.ID)
	}

	data := notify.OrderConfirmationData{
		VendorName: vendor.Name,
		RequestID:  requestID,
		TotalPrice: fmt.Sprintf("%.2f %s", offer.TotalPrice, offer.Currency),
		ItemCount:  len(offer.Items),
	}

	html, err := s.templates.GenerateOrderConfirmationHTML(data)
	if err != nil {
		return fmt.Errorf("service.ConfirmOrder template: %w", err)
	}

	subject := fmt.Sprintf("Order confirmed: request %s", requestID)
	plain := fmt.Sprintf("The customer accepted your offer for request %s. %d item(s), total %s.",
		requestID, len(offer.Items), data.TotalPrice)

	if err := s.sender.Send(ctx, vendor.Email, subject, plain, html); err != nil {
		return err
	}

	s.logger.Info("order confirmation sent",
		zap.String("request_id", requestID),
		zap.String("vendor_id", vendor.ID))
	return nil
}

func (s *Service) notifyVendor(ctx context.Context, request models.VendorRequestPayload, candidate models.RouteBasedVendorCandidate) error {
	vendor, err := s.vendors.FindByID(ctx, candidate.ID)
	if err != nil {
		return fmt.Errorf("service.notifyVendor lookup: %w", err)
	}
	if vendor.Email == "" {
		return fmt.Errorf("service.notifyVendor: vendor %s has no contact address", vendor.ID)
	}

	token, err := utils.MintVendorToken(s.jwtSecret, vendor.ID, request.RequestID, request.DeadlineUTC)
	if err != nil {
		return err
	}

	data := notify.VendorRequestData{
		VendorName:  vendor.Name,
		ItemCount:   len(request.Items),
		ItemSummary: notify.SummarizeItems(request.Items),
		Deadline:    request.DeadlineUTC.Format("15:04 MST, Jan 2"),
		ResponseURL: fmt.Sprintf("%s/vendor/respond?token=%s", s.responseBaseURL, token),
	}

	html, err := s.templates.GenerateVendorRequestHTML(data)
	if err != nil {
		return fmt.Errorf("service.notifyVendor template: %w", err)
	}

	subject := fmt.Sprintf("New request: %d item(s) from a customer on your route", len(request.Items))
	plain := fmt.Sprintf("%s\nRespond before %s: %s", data.ItemSummary, data.Deadline, data.ResponseURL)

	return s.sender.Send(ctx, vendor.Email, subject, plain, html)
}
