// Package pages holds the command-facing flows, one type per screen
// of the storefront. Pages orchestrate the stores and the API client
// and render plain text; they own no cart or session rules.
//
// API failures stop at this layer: the backend's message (or a generic
// one) is printed for the user and the flow ends without retrying.
package pages

import (
	"errors"
	"fmt"
	"io"

	"github.com/prince9318/smartcart-client/internal/api"
)

// renderAPIError prints an API failure as a user-facing message and
// reports whether err was one. Anything else propagates to the CLI.
func renderAPIError(out io.Writer, err error) bool {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(out, "Error: %s\n", apiErr.Error())
		return true
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
