package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// apiClient is a thin HTTP client for the server's operational surface
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient() *apiClient {
	baseURL := viper.GetString("server_url")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// call issues a request and decodes the JSON response into a generic map
func (c *apiClient) call(method, path string, body interface{}) (map[string]interface{}, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if errObj, ok := result["error"].(map[string]interface{}); ok {
			return result, fmt.Errorf("%v: %v", errObj["code"], errObj["message"])
		}
		return result, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return result, nil
}

// printJSON pretty-prints a response map
func printJSON(data map[string]interface{}) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
