package v3

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cloudrevehq/cloudreve-go/api"
)

// CreateShareRequest describes a new share link for one object.
type CreateShareRequest struct {
	ID        string `json:"id"`
	IsDir     bool   `json:"is_dir"`
	Password  string `json:"password"`
	Downloads int    `json:"downloads"`
	Expire    int64  `json:"expire"`
	Preview   bool   `json:"preview"`
}

// CreateShare creates a share link and returns its URL. Some server builds
// wrap the URL in the standard envelope while others return the bare URL as
// the body, so both forms are accepted.
func (c *Client) CreateShare(ctx context.Context, req CreateShareRequest) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, "share", req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // read side only

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &api.TransportError{Err: err}
	}
	trimmed := strings.TrimSpace(string(body))
	success := resp.StatusCode >= 200 && resp.StatusCode <= 299

	var env api.Envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr == nil {
		if env.Code != 0 {
			return "", &api.APIError{Code: env.Code, Message: env.Msg}
		}
		if success {
			return api.UnmarshalData[string](env.Data)
		}
	}
	if success && strings.HasPrefix(trimmed, "http") {
		return trimmed, nil
	}
	return "", &api.APIError{Code: resp.StatusCode, Message: trimmed}
}
