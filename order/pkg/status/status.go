package status

// Status is the order lifecycle state persisted on the order row.
type Status string

const (
	Pending          Status = "pending"
	PaymentPending   Status = "payment_pending"
	PaymentCompleted Status = "payment_completed"
	Processing       Status = "processing"
	Shipped          Status = "shipped"
	Delivered        Status = "delivered"
	Cancelled        Status = "cancelled"
	Refunded         Status = "refunded"
)

// transitions is the forward path plus the cancel and refund branches. An
// order can be cancelled until it ships; a refund needs a completed payment,
// either directly or through a cancellation of a paid order.
var transitions = map[Status][]Status{
	Pending:          {PaymentPending, Cancelled},
	PaymentPending:   {PaymentCompleted, Cancelled},
	PaymentCompleted: {Processing, Cancelled, Refunded},
	Processing:       {Shipped, Cancelled, Refunded},
	Shipped:          {Delivered},
	Delivered:        {},
	Cancelled:        {Refunded},
	Refunded:         {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
