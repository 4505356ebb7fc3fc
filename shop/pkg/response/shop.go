package response

import (
	"time"

	"github.com/google/uuid"
)

type Inquiry struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Message    string     `json:"message"`
	ProductSku string     `json:"productSku,omitempty"`
	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Visits is one day of page view counters keyed by path.
type Visits struct {
	Date  string           `json:"date"`
	Total int64            `json:"total"`
	Paths map[string]int64 `json:"paths"`
}
