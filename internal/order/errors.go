// AngelaMos | 2026
// errors.go

package order

import (
	"errors"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/core"
)

// ErrAlreadyPurchased marks a cart that was paid for but could not be
// removed afterwards.
var ErrAlreadyPurchased = fmt.Errorf("cart already purchased: %w", core.ErrDuplicateKey)

// InconsistencyError means the customer was charged but the order record
// could not be written. It carries what an operator needs to reconcile.
type InconsistencyError struct {
	OrderID     string
	ChargeID    string
	UserEmail   string
	AmountCents int64
	Err         error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf(
		"%v: order %s charge %s amount %d: %v",
		core.ErrInconsistency,
		e.OrderID,
		e.ChargeID,
		e.AmountCents,
		e.Err,
	)
}

func (e *InconsistencyError) Unwrap() []error {
	return []error{core.ErrInconsistency, e.Err}
}

func AsInconsistency(err error) (*InconsistencyError, bool) {
	var ie *InconsistencyError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
