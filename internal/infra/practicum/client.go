// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// maxErrorBody bounds how much of a failed response is kept in APIStatusError.
const maxErrorBody = 1 << 10

// Client queries the homework status API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logrus.Entry
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// GetAPIAnswer requests homework statuses changed since fromDate and returns
// the decoded JSON body. Numbers in the body are json.Number.
func (c *Client) GetAPIAnswer(ctx context.Context, fromDate int64) (any, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(fromDate, 10))

	logCtx := c.logger.WithField("endpoint", c.endpoint).WithField("from_date", fromDate)
	logCtx.Debug("Requesting homework statuses")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Homework API is unreachable")
		return nil, &homework.ConnectionError{URL: c.endpoint, Params: params, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &homework.APIStatusError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       strings.TrimSpace(string(body)),
		}
		logCtx.WithField("status_code", resp.StatusCode).Error("Homework API returned an error status")
		return nil, apiErr
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var answer any
	if err := dec.Decode(&answer); err != nil {
		return nil, &homework.ShapeError{Reason: "response body is not valid JSON", Err: err}
	}
	return answer, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
