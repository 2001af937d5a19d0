// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package consult

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tranquangduy/medicore/internal/platform/apperr"
)

const upstreamTimeout = 10 * time.Second

// Client is the HTTP client for the external consult-aggregation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a [Client] for the given upstream base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: upstreamTimeout},
	}
}

/*
FetchByPatient requests the consult list for one patient from upstream.

Parameters:
  - context: context.Context
  - patientID: string (UUIDv7)

Returns:
  - []byte: Raw JSON body as returned by the upstream service
  - error: apperr.ServiceUnavailable if the upstream call fails or answers
    with a non-200 status
*/
func (client *Client) FetchByPatient(context context.Context, patientID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/v1/patients/%s/consults", client.baseURL, url.PathEscape(patientID))

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("consult_client_build_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.ServiceUnavailable("Consult service is unreachable")
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("Patient consults")
	}
	if response.StatusCode != http.StatusOK {
		return nil, apperr.ServiceUnavailable("Consult service returned an error")
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("consult_client_read_body_failed: %w", err)
	}

	// Reject bodies that are not valid JSON before they reach the cache.
	if !json.Valid(body) {
		return nil, apperr.ServiceUnavailable("Consult service returned a malformed response")
	}

	return body, nil
}
