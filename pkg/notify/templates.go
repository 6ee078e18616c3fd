package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"thru-backend/internal/models"
)

// TemplateManager holds the parsed notification templates.
type TemplateManager struct {
	VendorRequestTmpl     *template.Template
	OrderConfirmationTmpl *template.Template
}

// NewTemplateManager parses all notification templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	requestTmpl, err := template.New("vendorRequest").Parse(vendorRequestTemplate)
	if err != nil {
		return nil, err
	}

	confirmationTmpl, err := template.New("orderConfirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return nil, err
	}

	return &TemplateManager{
		VendorRequestTmpl:     requestTmpl,
		OrderConfirmationTmpl: confirmationTmpl,
	}, nil
}

// VendorRequestData holds the dynamic data for a vendor request notice.
type VendorRequestData struct {
	VendorName  string
	ItemCount   int
	ItemSummary string
	Deadline    string
	ResponseURL string
}

// OrderConfirmationData holds the dynamic data for an order confirmation.
type OrderConfirmationData struct {
	VendorName string
	RequestID  string
	TotalPrice string
	ItemCount  int
}

// SummarizeItems renders the one-line cart summary shown in the
// notification body, e.g. "2.5 kg tomatoes, 1 l milk".
func SummarizeItems(items []models.RequestItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%g %s %s", item.RequestedQtyValue, item.RequestedQtyUnit, item.ProductName))
	}
	return strings.Join(parts, ", ")
}

// GenerateVendorRequestHTML executes the vendor request template.
func (tm *TemplateManager) GenerateVendorRequestHTML(data VendorRequestData) (string, error) {
	var body bytes.Buffer
	if err := tm.VendorRequestTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// GenerateOrderConfirmationHTML executes the order confirmation template.
func (tm *TemplateManager) GenerateOrderConfirmationHTML(data OrderConfirmationData) (string, error) {
	var body bytes.Buffer
	if err := tm.OrderConfirmationTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// --- HTML Template Definitions ---

const vendorRequestTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>New Item Request</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>New request for {{.VendorName}}</h2>
	<p>A customer passing your store has requested {{.ItemCount}} item(s):</p>
	<p><strong>{{.ItemSummary}}</strong></p>
	<p>Please submit your offer before <strong>{{.Deadline}}</strong>.</p>
	<p><a href="{{.ResponseURL}}">Respond to this request</a></p>
	<p>Offers received after the deadline cannot be considered.</p>
</body>
</html>
`

const orderConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Order Confirmed</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Order confirmed for {{.VendorName}}</h2>
	<p>The customer accepted your offer for request {{.RequestID}}.</p>
	<p>{{.ItemCount}} item(s), total {{.TotalPrice}}.</p>
	<p>Please have the order ready for pickup along the customer's route.</p>
</body>
</html>
`
