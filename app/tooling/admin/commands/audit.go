package commands

import (
	"errors"
	"fmt"
)

type audit struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// Audit runs the full chain audit on the node and reports the result.
func Audit(url string) error {
	var a audit
	if err := get(url, "/v1/node/audit", &a); err != nil {
		return err
	}

	if !a.Valid {
		return errors.New(a.Error)
	}

	fmt.Println("chain is valid")
	return nil
}
