// Package apiclient talks to the huddle API with a bearer token.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/huddle-dev/huddle/shared/errors"
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	Token      string
	HttpClient *http.Client
}

func New(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HttpClient: &http.Client{},
	}
}

// do sends the request and decodes a 2xx JSON body into out when out is
// not nil. Other statuses come back as *errors.ErrorWithStatusCode carrying
// the server's message.
func (c *APIClient) do(method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create API request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &errors.ErrorWithStatusCode{Message: strings.TrimSpace(string(msg)), StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *APIClient) doJSON(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cannot encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	return c.do(method, path, "application/json", body, out)
}
