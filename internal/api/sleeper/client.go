package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/omarshaarawi/sleeperbot/internal/config"
	"github.com/omarshaarawi/sleeperbot/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	httpClient *http.Client
	Config     config.SleeperAPI
}

func NewClient(cfg config.SleeperAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
	}
}

// Get fetches baseURL+endpoint and decodes the JSON body into result.
// A JSON null body leaves result untouched.
func (c *Client) Get(ctx context.Context, baseURL, endpoint string, params map[string]string, result interface{}) error {
	url := fmt.Sprintf("%s%s", strings.TrimRight(baseURL, "/"), endpoint)
	op := "GET " + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.ProviderError{Op: op, Err: fmt.Errorf("%w: %v", models.ErrRemoteUnavailable, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &models.ProviderError{Op: op, StatusCode: resp.StatusCode, Err: models.ErrNotFound}
	case resp.StatusCode != http.StatusOK:
		return &models.ProviderError{Op: op, StatusCode: resp.StatusCode, Err: models.ErrRemoteUnavailable}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.ProviderError{Op: op, Err: fmt.Errorf("%w: reading body: %v", models.ErrRemoteUnavailable, err)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &models.ProviderError{Op: op, Err: fmt.Errorf("%w: malformed payload: %v", models.ErrRemoteUnavailable, err)}
	}

	return nil
}
