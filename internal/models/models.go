package models

import "time"

// KnowledgeItem is a titled fact shown to reviewers alongside a suggestion.
type KnowledgeItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// AIConfig is the single global tuning record. Updates replace the whole
// record; there is no partial patch.
type AIConfig struct {
	ConfidenceThreshold int    `json:"confidenceThreshold"`
	AutoResponse        bool   `json:"autoResponse"`
	ResponseTemplate    string `json:"responseTemplate"`
	CompanyName         string `json:"companyName"`
	ContactEmail        string `json:"contactEmail"`
}

// LearningStats is the running tally derived from status transitions.
// AvgAccuracy is the approval rate in percent, not a confidence average;
// the field name is kept for wire compatibility.
type LearningStats struct {
	Approved       int `json:"approved"`
	Rejected       int `json:"rejected"`
	AvgAccuracy    int `json:"avgAccuracy"`
	TotalProcessed int `json:"totalProcessed"`
}

// Suggestion is the classifier's opinion about an inquiry: a draft response
// and a fixed confidence score attached by the rule that matched.
type Suggestion struct {
	DraftText  string `json:"draftText"`
	Confidence int    `json:"confidence"`
}
