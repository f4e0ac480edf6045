package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmroz/inquiry-desk/internal/classifier"
	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/models"
)

// Notifier receives lifecycle events for reviewer channels. Implementations
// must not fail the calling operation; delivery problems are theirs to log.
type Notifier interface {
	InquiryReceived(inquiry models.Inquiry)
	InquiryResolved(inquiry models.Inquiry)
}

// InquiryRepository owns the inquiry lifecycle: creation (with synchronous
// classification), listing, and the pending → approved|rejected state
// machine with its statistics side effect.
type InquiryRepository struct {
	store      kvstore.Store
	classifier classifier.Classifier
	config     *ConfigStore
	knowledge  *KnowledgeRepository
	stats      *StatsAggregator
	notifier   Notifier // optional
	logger     *zap.Logger

	now func() time.Time
}

func NewInquiryRepository(store kvstore.Store, clf classifier.Classifier, config *ConfigStore, knowledge *KnowledgeRepository, stats *StatsAggregator, notifier Notifier, logger *zap.Logger) *InquiryRepository {
	return &InquiryRepository{
		store:      store,
		classifier: clf,
		config:     config,
		knowledge:  knowledge,
		stats:      stats,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// Create assigns id and timestamp, invokes the classifier synchronously and
// persists the inquiry as pending. Input fields are stored as given; the
// user-declared category is kept even when the classifier disagrees.
func (r *InquiryRepository) Create(ctx context.Context, input models.InquiryInput) (models.Inquiry, error) {
	cfg, err := r.config.Get(ctx)
	if err != nil {
		return models.Inquiry{}, err
	}

	knowledge, err := r.knowledge.List(ctx)
	if err != nil {
		// Knowledge is classifier context only; a read failure must not
		// block intake.
		r.logger.Warn("Failed to load knowledge base for classification", zap.Error(err))
		knowledge = nil
	}

	suggestion := r.classifier.Classify(input.Message, cfg, knowledge)

	inquiry := models.Inquiry{
		ID:           uuid.New().String(),
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Subject:      input.Subject,
		Message:      input.Message,
		Category:     input.Category,
		AISuggestion: suggestion.DraftText,
		Confidence:   suggestion.Confidence,
		Status:       models.StatusPending,
		Timestamp:    r.now().UTC(),
	}

	if err := r.save(ctx, inquiry); err != nil {
		return models.Inquiry{}, err
	}

	r.logger.Info("Inquiry created",
		zap.String("id", inquiry.ID),
		zap.String("category", string(inquiry.Category)),
		zap.Int("confidence", inquiry.Confidence))

	if r.notifier != nil {
		r.notifier.InquiryReceived(inquiry)
	}
	return inquiry, nil
}

func (r *InquiryRepository) Get(ctx context.Context, id string) (models.Inquiry, error) {
	raw, err := r.store.Get(ctx, inquiryPrefix+id)
	if errors.Is(err, kvstore.ErrNotFound) {
		return models.Inquiry{}, fmt.Errorf("%w: inquiry %s", ErrNotFound, id)
	}
	if err != nil {
		return models.Inquiry{}, err
	}

	var inquiry models.Inquiry
	if err := json.Unmarshal(raw, &inquiry); err != nil {
		return models.Inquiry{}, fmt.Errorf("%w: %s%s: %v", ErrCorruptRecord, inquiryPrefix, id, err)
	}
	return inquiry, nil
}

// List returns every inquiry, newest first. The presentation layer depends
// on this ordering.
func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	entries, err := r.store.GetByPrefix(ctx, inquiryPrefix)
	if err != nil {
		return nil, err
	}

	inquiries := make([]models.Inquiry, 0, len(entries))
	for _, e := range entries {
		var inquiry models.Inquiry
		if err := json.Unmarshal(e.Value, &inquiry); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, e.Key, err)
		}
		inquiries = append(inquiries, inquiry)
	}

	sort.SliceStable(inquiries, func(i, j int) bool {
		return inquiries[i].Timestamp.After(inquiries[j].Timestamp)
	})
	return inquiries, nil
}

// SetStatus moves an inquiry to approved or rejected. Terminal inquiries
// reject further transitions so the statistics cannot double-count them.
// finalResponse, when non-empty, records the reviewer's edited reply.
func (r *InquiryRepository) SetStatus(ctx context.Context, id string, status models.Status, finalResponse string) (models.Inquiry, error) {
	inquiry, err := r.Get(ctx, id)
	if err != nil {
		return models.Inquiry{}, err
	}
	if inquiry.Status.Terminal() {
		return models.Inquiry{}, fmt.Errorf("%w: inquiry %s is %s", ErrInvalidTransition, id, inquiry.Status)
	}

	inquiry.Status = status
	inquiry.UpdatedAt = r.now().UTC()
	if finalResponse != "" {
		inquiry.FinalResponse = finalResponse
	}

	if err := r.save(ctx, inquiry); err != nil {
		return models.Inquiry{}, err
	}

	if err := r.stats.Record(ctx, status, inquiry.Confidence); err != nil {
		return models.Inquiry{}, err
	}

	r.logger.Info("Inquiry status changed",
		zap.String("id", inquiry.ID),
		zap.String("status", string(inquiry.Status)))

	if r.notifier != nil {
		r.notifier.InquiryResolved(inquiry)
	}
	return inquiry, nil
}

func (r *InquiryRepository) save(ctx context.Context, inquiry models.Inquiry) error {
	raw, err := json.Marshal(inquiry)
	if err != nil {
		return fmt.Errorf("error encoding inquiry: %v", err)
	}
	return r.store.Set(ctx, inquiryPrefix+inquiry.ID, raw)
}
