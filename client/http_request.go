// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/launchpool/launchpool/api/restutil"
	"github.com/launchpool/launchpool/reverts"
)

func (c *Client) httpRequest(method, url string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// reverts travel as a kind header and the reason as body
		if kind := resp.Header.Get(restutil.RevertKindHeader); kind != "" {
			return nil, reverts.New(reverts.ParseKind(kind), strings.TrimSpace(string(responseBody)))
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s - %w", strings.TrimSpace(string(responseBody)), ErrNotFound)
		}
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, responseBody, ErrNot200Status)
	}
	return responseBody, nil
}

func (c *Client) httpGET(url string) ([]byte, error) {
	return c.httpRequest(http.MethodGet, url, nil)
}

func (c *Client) httpPOST(url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	return c.httpRequest(http.MethodPost, url, bytes.NewBuffer(data))
}

// do posts payload to url and decodes the response into res, when res is not nil.
func (c *Client) do(url string, payload, res any) error {
	body, err := c.httpPOST(url, payload)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	return json.Unmarshal(body, res)
}
