package domain

import "time"

// EnrollmentMode controls what enrollment copy may be appended to a response.
type EnrollmentMode string

const (
	EnrollDirectCheckout  EnrollmentMode = "direct_checkout"
	EnrollClarityCallOnly EnrollmentMode = "clarity_call_only"
	EnrollHybrid          EnrollmentMode = "hybrid"
)

// Program is the single source of truth for all enrollment text injected into
// responses. A price or checkout URL may reach the user only from this table,
// never from free model text.
type Program struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"uniqueIndex"`
	EnrollmentMode EnrollmentMode  `json:"enrollment_mode"`
	InfoURL        string          `json:"info_url"`
	PaymentOptions []PaymentOption `json:"payment_options" gorm:"foreignKey:ProgramID"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type PaymentOption struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ProgramID   string `json:"program_id" gorm:"index"`
	Label       string `json:"label"`
	Price       string `json:"price"` // display string, e.g. "$1,200" or "£950"
	Description string `json:"description"`
	CheckoutURL string `json:"checkout_url"`
}
