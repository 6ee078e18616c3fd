package quoting

import (
	"sync"
	"time"

	"thru-backend/internal/models"
)

// Collector holds the in-flight collection windows: one per dispatched
// request, keyed by request ID. Responses upsert by vendor ID, so no
// ordering guarantee is needed beyond last-write-wins per vendor.
//
// Windows are session-scoped and live only in memory; a restart discards
// them, matching the lifecycle of the requests they track.
type Collector struct {
	mu       sync.RWMutex
	requests map[string]*requestState
	now      func() time.Time
}

type requestState struct {
	payload   models.VendorRequestPayload
	status    models.RequestStatus
	responses map[string]models.VendorResponsePayload
	arrival   []string // vendor IDs in first-arrival order
	watchers  map[chan struct{}]struct{}
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		requests: make(map[string]*requestState),
		now:      time.Now,
	}
}

// Open starts a collection window for a dispatched request.
func (c *Collector) Open(payload models.VendorRequestPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[payload.RequestID] = &requestState{
		payload:   payload,
		status:    models.RequestCollecting,
		responses: make(map[string]models.VendorResponsePayload),
		watchers:  make(map[chan struct{}]struct{}),
	}
}

// Request returns the immutable payload for a request.
func (c *Collector) Request(requestID string) (models.VendorRequestPayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.requests[requestID]
	if !ok {
		return models.VendorRequestPayload{}, models.ErrNotFound
	}
	return state.payload, nil
}

// Status reports the request's lifecycle state. A window whose deadline
// has passed reads as ready_for_selection even before an explicit close.
func (c *Collector) Status(requestID string) (models.RequestStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.requests[requestID]
	if !ok {
		return "", models.ErrNotFound
	}
	return c.effectiveStatus(state), nil
}

func (c *Collector) effectiveStatus(state *requestState) models.RequestStatus {
	if state.status == models.RequestCollecting && c.now().After(state.payload.DeadlineUTC) {
		return models.RequestReady
	}
	return state.status
}

// Submit upserts a validated vendor response into the window. A response
// arriving after the deadline fails with ErrOfferExpired and is discarded
// entirely; it is never merged retroactively.
func (c *Collector) Submit(response models.VendorResponsePayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.requests[response.RequestID]
	if !ok {
		return models.ErrNotFound
	}
	if state.status != models.RequestCollecting {
		return models.ErrRequestNotCollecting
	}
	if c.now().After(state.payload.DeadlineUTC) {
		return models.ErrOfferExpired
	}

	if _, seen := state.responses[response.VendorID]; !seen {
		state.arrival = append(state.arrival, response.VendorID)
	}
	state.responses[response.VendorID] = response

	for watcher := range state.watchers {
		select {
		case watcher <- struct{}{}:
		default:
		}
	}
	return nil
}

// Responses returns the effective response set in first-arrival order.
func (c *Collector) Responses(requestID string) ([]models.VendorResponsePayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.requests[requestID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := make([]models.VendorResponsePayload, 0, len(state.arrival))
	for _, vendorID := range state.arrival {
		out = append(out, state.responses[vendorID])
	}
	return out, nil
}

// Close ends the collection phase early, before the deadline.
func (c *Collector) Close(requestID string) error {
	return c.transition(requestID, models.RequestReady, func(status models.RequestStatus) error {
		if status != models.RequestCollecting && status != models.RequestReady {
			return models.ErrRequestNotCollecting
		}
		return nil
	})
}

// Accept marks the request accepted after the user picks a vendor.
func (c *Collector) Accept(requestID string) error {
	return c.transition(requestID, models.RequestAccepted, func(status models.RequestStatus) error {
		if status != models.RequestReady {
			return models.ErrRequestNotReady
		}
		return nil
	})
}

// Expire marks an abandoned request expired.
func (c *Collector) Expire(requestID string) error {
	return c.transition(requestID, models.RequestExpired, func(status models.RequestStatus) error {
		if status == models.RequestAccepted {
			return models.ErrRequestNotReady
		}
		return nil
	})
}

func (c *Collector) transition(requestID string, to models.RequestStatus, check func(models.RequestStatus) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.requests[requestID]
	if !ok {
		return models.ErrNotFound
	}
	if err := check(c.effectiveStatus(state)); err != nil {
		return err
	}
	state.status = to
	return nil
}

// Watch registers for new-response notifications on a request. The
// returned cancel func must be called when the watcher goes away.
func (c *Collector) Watch(requestID string) (<-chan struct{}, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.requests[requestID]
	if !ok {
		return nil, nil, models.ErrNotFound
	}

	ch := make(chan struct{}, 1)
	state.watchers[ch] = struct{}{}

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if s, ok := c.requests[requestID]; ok {
			delete(s.watchers, ch)
		}
	}
	return ch, cancel, nil
}
