// Package commands holds the individual admin commands. Each command talks
// to the private API of a running node.
package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// get performs a GET against the private API and decodes the JSON response
// into the provided value.
func get(url string, path string, v any) error {
	resp, err := http.Get(url + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
