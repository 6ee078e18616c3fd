package quoting

import (
	"testing"
	"time"

	"thru-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrozenCollector(at time.Time) *Collector {
	c := NewCollector()
	c.now = func() time.Time { return at }
	return c
}

func openWindow(c *Collector, deadline time.Time) models.VendorRequestPayload {
	payload := models.VendorRequestPayload{
		RequestID:   "req-1",
		UserID:      "user-1",
		DeadlineUTC: deadline,
		Items: []models.RequestItem{
			{RequestItemID: "rice", ProductName: "Rice", RequestedQtyValue: 1, RequestedQtyUnit: models.UnitKg},
		},
	}
	c.Open(payload)
	return payload
}

func response(vendorID string, price float64) models.VendorResponsePayload {
	return models.VendorResponsePayload{
		RequestID: "req-1",
		VendorID:  vendorID,
		Offers: []models.VendorOffer{
			{Type: models.OfferTypeExactQty, RequestItemID: "rice", PriceTotal: price, Currency: "INR"},
		},
	}
}

func TestCollectorSubmitWithinWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	require.NoError(t, c.Submit(response("v1", 100)))

	responses, err := c.Responses("req-1")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "v1", responses[0].VendorID)
}

func TestCollectorSubmitAfterDeadlineExpires(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	deadline := start.Add(30 * time.Minute)
	c := newFrozenCollector(start)
	openWindow(c, deadline)

	// One second past the deadline is already too late, and the response
	// leaves no trace.
	c.now = func() time.Time { return deadline.Add(1 * time.Second) }

	err := c.Submit(response("late", 100))
	assert.ErrorIs(t, err, models.ErrOfferExpired)

	responses, err := c.Responses("req-1")
	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestCollectorStatusReadsReadyPastDeadline(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	deadline := start.Add(30 * time.Minute)
	c := newFrozenCollector(start)
	openWindow(c, deadline)

	status, err := c.Status("req-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestCollecting, status)

	c.now = func() time.Time { return deadline.Add(1 * time.Second) }

	status, err = c.Status("req-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestReady, status)
}

func TestCollectorUpsertKeepsArrivalOrder(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	require.NoError(t, c.Submit(response("v1", 100)))
	require.NoError(t, c.Submit(response("v2", 90)))
	// v1 revises; the replacement slots into v1's original position.
	require.NoError(t, c.Submit(response("v1", 80)))

	responses, err := c.Responses("req-1")
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "v1", responses[0].VendorID)
	assert.InDelta(t, 80, responses[0].Offers[0].PriceTotal, 1e-9)
	assert.Equal(t, "v2", responses[1].VendorID)
}

func TestCollectorSubmitUnknownRequest(t *testing.T) {
	c := newFrozenCollector(time.Now())

	err := c.Submit(response("v1", 100))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCollectorCloseStopsSubmissions(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	require.NoError(t, c.Close("req-1"))

	status, err := c.Status("req-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestReady, status)

	err = c.Submit(response("v1", 100))
	assert.ErrorIs(t, err, models.ErrRequestNotCollecting)
}

func TestCollectorAcceptLifecycle(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	// Accepting a still-collecting window is premature.
	assert.ErrorIs(t, c.Accept("req-1"), models.ErrRequestNotReady)

	require.NoError(t, c.Close("req-1"))
	require.NoError(t, c.Accept("req-1"))

	status, err := c.Status("req-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, status)

	// An accepted request never expires.
	assert.ErrorIs(t, c.Expire("req-1"), models.ErrRequestNotReady)
}

func TestCollectorAcceptAfterDeadlineWithoutClose(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	deadline := start.Add(30 * time.Minute)
	c := newFrozenCollector(start)
	openWindow(c, deadline)

	// The deadline passing makes the window selectable without an
	// explicit close call.
	c.now = func() time.Time { return deadline.Add(1 * time.Minute) }
	require.NoError(t, c.Accept("req-1"))
}

func TestCollectorExpire(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	require.NoError(t, c.Expire("req-1"))

	status, err := c.Status("req-1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestExpired, status)
}

func TestCollectorWatchNotifiesOnSubmit(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	updates, cancel, err := c.Watch("req-1")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, c.Submit(response("v1", 100)))

	select {
	case <-updates:
	default:
		t.Fatal("expected a notification after submit")
	}
}

func TestCollectorWatchCancelRemovesWatcher(t *testing.T) {
	start := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	c := newFrozenCollector(start)
	openWindow(c, start.Add(30*time.Minute))

	updates, cancel, err := c.Watch("req-1")
	require.NoError(t, err)
	cancel()

	require.NoError(t, c.Submit(response("v1", 100)))

	select {
	case <-updates:
		t.Fatal("cancelled watcher should not be notified")
	default:
	}
}

func TestCollectorWatchUnknownRequest(t *testing.T) {
	c := newFrozenCollector(time.Now())

	_, _, err := c.Watch("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
