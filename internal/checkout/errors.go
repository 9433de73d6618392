package checkout

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrEmptyCart is returned when a submission is attempted with
	// nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSubmissionInFlight is returned when a second submission is
	// attempted while one is already running for the same session.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrStorage marks a failed order insert. The cart is left intact
	// so the user can retry.
	ErrStorage = errors.New("order could not be placed")
)

// ValidationErrors maps field names to user-facing messages. It is
// produced before any external call is made.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid checkout input: " + strings.Join(fields, ", ")
}
