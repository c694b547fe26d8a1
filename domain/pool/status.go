package pool

import (
	"encoding/json"
	"fmt"
)

// StatusKind enumerates the order lifecycle states.
type StatusKind uint8

const (
	StatusActive StatusKind = iota
	StatusCancelled
	StatusPartiallyMatched
	StatusFullyMatched
	StatusExpired
)

func (k StatusKind) String() string {
	switch k {
	case StatusActive:
		return "active"
	case StatusCancelled:
		return "cancelled"
	case StatusPartiallyMatched:
		return "partially_matched"
	case StatusFullyMatched:
		return "fully_matched"
	case StatusExpired:
		return "expired"
	default:
		return fmt.Sprintf("status(%d)", uint8(k))
	}
}

func (k StatusKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *StatusKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "active":
		*k = StatusActive
	case "cancelled":
		*k = StatusCancelled
	case "partially_matched":
		*k = StatusPartiallyMatched
	case "fully_matched":
		*k = StatusFullyMatched
	case "expired":
		*k = StatusExpired
	default:
		return fmt.Errorf("unknown order status %q", s)
	}
	return nil
}

// OrderStatus is a tagged variant: FilledAmount is meaningful only for
// StatusPartiallyMatched. The current matching rule never produces a
// partial match; the variant exists for forward compatibility.
type OrderStatus struct {
	Kind         StatusKind `json:"kind"`
	FilledAmount uint64     `json:"filled_amount,omitempty"`
}

func ActiveStatus() OrderStatus    { return OrderStatus{Kind: StatusActive} }
func CancelledStatus() OrderStatus { return OrderStatus{Kind: StatusCancelled} }
func FullyMatchedStatus() OrderStatus {
	return OrderStatus{Kind: StatusFullyMatched}
}
func ExpiredStatus() OrderStatus { return OrderStatus{Kind: StatusExpired} }

func PartiallyMatchedStatus(filled uint64) OrderStatus {
	return OrderStatus{Kind: StatusPartiallyMatched, FilledAmount: filled}
}

func (s OrderStatus) IsActive() bool {
	return s.Kind == StatusActive
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	switch s.Kind {
	case StatusCancelled, StatusFullyMatched, StatusExpired:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	if s.Kind == StatusPartiallyMatched {
		return fmt.Sprintf("partially_matched(%d)", s.FilledAmount)
	}
	return s.Kind.String()
}
