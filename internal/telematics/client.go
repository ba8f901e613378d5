// Package telematics talks to the fleet hardware provider. Vehicles sleep
// between rentals to save battery, so commands are sequenced through the
// Dispatcher: poll until online, wake if needed, then send.
package telematics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"urbandrive-backend/internal/service"
)

// Client implements service.VehicleCommander against the provider's REST API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type stateResponse struct {
	State string `json:"state"`
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Result string `json:"result"`
	Reason string `json:"reason,omitempty"`
}

// QueryState asks the provider whether the vehicle's modem is reachable.
func (c *Client) QueryState(ctx context.Context, telematicsRef string) (service.VehicleState, error) {
	url := fmt.Sprintf("%s/vehicles/%s/state", c.baseURL, telematicsRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return service.VehicleStateUnknown, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return service.VehicleStateUnknown, fmt.Errorf("telematics state query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return service.VehicleStateUnknown, fmt.Errorf("telematics state query: status %d", resp.StatusCode)
	}

	var sr stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return service.VehicleStateUnknown, fmt.Errorf("telematics state decode: %w", err)
	}

	switch sr.State {
	case "online":
		return service.VehicleStateOnline, nil
	case "offline", "asleep":
		return service.VehicleStateOffline, nil
	default:
		return service.VehicleStateUnknown, nil
	}
}

// Wake asks the provider to bring the vehicle's modem out of sleep.
func (c *Client) Wake(ctx context.Context, telematicsRef string) error {
	url := fmt.Sprintf("%s/vehicles/%s/wake", c.baseURL, telematicsRef)
	return c.post(ctx, url, nil)
}

// SendCommand issues a named command such as door_unlock or door_lock.
func (c *Client) SendCommand(ctx context.Context, telematicsRef, command string) error {
	url := fmt.Sprintf("%s/vehicles/%s/command", c.baseURL, telematicsRef)
	return c.post(ctx, url, &commandRequest{Command: command})
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telematics request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telematics request: status %d", resp.StatusCode)
	}

	var cr commandResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return fmt.Errorf("telematics response decode: %w", err)
	}
	if cr.Result != "ok" {
		return fmt.Errorf("telematics command rejected: %s", cr.Reason)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
