// Package payment contains outbound adapters for the mobile money provider
// and agent notifications.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// MobileMoneyClient implements ports.PaymentCollaborator against the mobile
// money provider's collections API. All transport and provider-side failures
// are wrapped with ports.ErrExternalService so callers can classify them
// without knowing the provider.
type MobileMoneyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMobileMoneyClient creates a client for the provider's collections API.
// baseURL is the API root without a trailing slash.
func NewMobileMoneyClient(baseURL, apiKey string) *MobileMoneyClient {
	return &MobileMoneyClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type collectionRequestBody struct {
	ExternalID   string `json:"external_id"`
	Phone        string `json:"phone"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	PayerMessage string `json:"payer_message"`
}

type collectionStateBody struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// RequestToPay initiates a collection against the payer's phone. The provider
// answers with 202 Accepted once the approval prompt is queued; the outcome
// arrives later via callback or GetCollectionState.
func (c *MobileMoneyClient) RequestToPay(ctx context.Context, request ports.CollectionRequest) error {
	body := collectionRequestBody{
		ExternalID:   request.CorrelationID,
		Phone:        request.Phone,
		Amount:       request.Amount.Amount().StringFixed(2),
		Currency:     request.Amount.Currency().String(),
		PayerMessage: request.PayerMessage,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encode collection request: %w", ports.ErrExternalService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/collections", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build collection request: %w", ports.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request to pay: %w", ports.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: request to pay returned status %d", ports.ErrExternalService, resp.StatusCode)
	}
	return nil
}

// GetCollectionState polls the provider for the outcome of a collection.
func (c *MobileMoneyClient) GetCollectionState(ctx context.Context, correlationID string) (ports.CollectionState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/collections/"+url.PathEscape(correlationID), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build state request: %w", ports.ErrExternalService, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: get collection state: %w", ports.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: collection state returned status %d", ports.ErrExternalService, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read state response: %w", ports.ErrExternalService, err)
	}

	var state collectionStateBody
	if err = json.Unmarshal(raw, &state); err != nil {
		return "", fmt.Errorf("%w: decode state response: %w", ports.ErrExternalService, err)
	}

	switch state.Status {
	case "pending":
		return ports.CollectionPending, nil
	case "successful":
		return ports.CollectionSuccessful, nil
	case "failed":
		return ports.CollectionFailed, nil
	default:
		return "", fmt.Errorf("%w: unknown collection status %q", ports.ErrExternalService, state.Status)
	}
}
