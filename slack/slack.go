// Package slack posts short text messages to an incoming-webhook URL.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	username   string
	httpClient doer
}

// NewClient posts to webhookURL. Messages are sent as username when it is not empty.
func NewClient(webhookURL, username string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		username:   username,
		httpClient: httpClient,
	}
}

type message struct {
	Channel   string `json:"channel,omitempty"`
	Username  string `json:"username,omitempty"`
	Text      string `json:"text"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

func (c *Client) PostMessage(ctx context.Context, channel string, text string) error {
	payload, err := json.Marshal(message{
		Channel:   channel,
		Username:  c.username,
		Text:      text,
		IconEmoji: ":fork_and_knife:",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if reason := strings.TrimSpace(string(body)); reason != "" {
			return fmt.Errorf("failed to post message: %s: %s", resp.Status, reason)
		}
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
