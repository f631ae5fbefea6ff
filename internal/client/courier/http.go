package courier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/arefyev/sealmsg/internal/common"
)

type postRequest struct {
	Payload    []byte   `cbor:"payload"`
	Recipients []string `cbor:"recipients,omitempty"`
}

type postResponse struct {
	ConfirmedMillis int64 `cbor:"confirmed_ms"`
}

// HTTPCourier posts messages to a gateway over HTTP with CBOR bodies.
type HTTPCourier struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPCourier returns a courier posting to endpoint. token authenticates
// this device with the gateway; timeout caps each request, with a 30s
// default when zero.
func NewHTTPCourier(endpoint, token string, timeout time.Duration) *HTTPCourier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPCourier{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPCourier) PostEncryptedMessage(ctx context.Context, conversationID string, payload []byte, recipients []string) (time.Time, error) {
	body, err := cbor.Marshal(postRequest{Payload: payload, Recipients: recipients})
	if err != nil {
		return time.Time{}, fmt.Errorf("encoding post request: %w", err)
	}

	url := fmt.Sprintf("%s/conversations/%s/messages", c.endpoint, conversationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return time.Time{}, fmt.Errorf("building post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/cbor")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return time.Time{}, common.NewTransportError(common.StatusUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, mapHTTPStatus(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return time.Time{}, common.NewTransportError(common.StatusUnavailable, err)
	}
	var pr postResponse
	if err := cbor.Unmarshal(data, &pr); err != nil {
		return time.Time{}, fmt.Errorf("decoding post response: %w", err)
	}
	return time.UnixMilli(pr.ConfirmedMillis).UTC(), nil
}

func mapHTTPStatus(resp *http.Response) error {
	cause := fmt.Errorf("gateway returned %s", resp.Status)
	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return common.NewTransportError(common.StatusForbidden, cause)
	case resp.StatusCode == http.StatusNotFound:
		return common.NewTransportError(common.StatusNotFound, cause)
	case resp.StatusCode >= 500:
		return common.NewTransportError(common.StatusUnavailable, cause)
	default:
		return common.NewTransportError(common.StatusInternal, cause)
	}
}
