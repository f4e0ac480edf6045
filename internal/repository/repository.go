package repository

import "errors"

// Storage keys. Inquiries and knowledge items are keyed per id; config and
// stats are singletons.
const (
	inquiryPrefix   = "inquiry:"
	knowledgePrefix = "knowledge:"
	configKey       = "ai_config"
	statsKey        = "learning_stats"
)

var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a status change is requested
	// on an inquiry that is already approved or rejected.
	ErrInvalidTransition = errors.New("inquiry already in a terminal status")

	// ErrCorruptRecord is returned when a persisted record fails to decode
	// into its expected shape.
	ErrCorruptRecord = errors.New("corrupt record")
)
