package models

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Category string

const (
	CategoryPricing  Category = "pricing"
	CategoryTimeline Category = "timeline"
	CategoryProduct  Category = "product"
	CategoryGeneral  Category = "general"
)

// Inquiry is one customer request and its handling history. The input
// fields and the classifier output are immutable after creation; only
// Status, FinalResponse and UpdatedAt change afterwards.
type Inquiry struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	Email         string    `json:"email"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	Category      Category  `json:"category"`
	AISuggestion  string    `json:"aiSuggestion"`
	Confidence    int       `json:"confidence"`
	FinalResponse string    `json:"finalResponse,omitempty"`
	Status        Status    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// InquiryInput carries the caller-supplied fields of a new inquiry.
// Category is user-declared metadata; the classifier never overwrites it.
type InquiryInput struct {
	CustomerName string   `json:"customerName"`
	Email        string   `json:"email"`
	Subject      string   `json:"subject"`
	Message      string   `json:"message"`
	Category     Category `json:"category"`
}
