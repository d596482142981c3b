// Package sms provides a client for an HTTP SMS gateway and a bounded
// history of admin test sends.
package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client sends SMS messages through an HTTP gateway.
type Client struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewClient(apiURL, apiKey, from string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{},
	}
}

type sendMessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

type sendMessageResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

// SendSMS posts one message to the gateway and returns the provider message
// id on success.
func (c *Client) SendSMS(to string, body string) (string, error) {
	reqBody := sendMessageRequest{
		From: c.from,
		To:   to,
		Body: body,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return "", fmt.Errorf("sms gateway error: %s", result.Error)
		}
		return "", fmt.Errorf("sms gateway error: %s", resp.Status)
	}

	return result.MessageID, nil
}
