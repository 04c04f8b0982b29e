// Package notifier delivers SMS notifications through an external gateway.
// Sends happen after the owning transaction commits and never feed errors
// back into the business operation.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"courierhub/internal/pkg/errs"
)

// HTTPSMSGateway sends SMS messages by POSTing JSON to a gateway endpoint.
type HTTPSMSGateway struct {
	url    string
	client *http.Client
}

// NewHTTPSMSGateway creates a gateway client for the given endpoint URL.
func NewHTTPSMSGateway(url string, client *http.Client) (*HTTPSMSGateway, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPSMSGateway{url: url, client: client}, nil
}

type smsRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// Send posts one SMS to the gateway.
func (g *HTTPSMSGateway) Send(ctx context.Context, phone string, text string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	body, err := json.Marshal(smsRequest{To: phone, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}
