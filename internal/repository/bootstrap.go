package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jmroz/inquiry-desk/internal/classifier"
	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/models"
)

// Bootstrapper seeds demo data: default config, a starter knowledge base,
// sample inquiries and a zeroed stats record. Every write is guarded by an
// only-if-absent check, so re-running it never overwrites existing data.
// Partial failures are logged and skipped; /init can simply be retried.
type Bootstrapper struct {
	store      kvstore.Store
	classifier classifier.Classifier
	logger     *zap.Logger
}

func NewBootstrapper(store kvstore.Store, clf classifier.Classifier, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{store: store, classifier: clf, logger: logger}
}

func (b *Bootstrapper) Run(ctx context.Context) string {
	b.seedConfig(ctx)
	b.seedStats(ctx)
	b.seedKnowledge(ctx)
	b.seedInquiries(ctx)
	return "bootstrap complete"
}

// setIfAbsent writes the encoded value only when the key does not exist.
func (b *Bootstrapper) setIfAbsent(ctx context.Context, key string, value interface{}) {
	_, err := b.store.Get(ctx, key)
	if err == nil {
		return
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		b.logger.Warn("Bootstrap read failed", zap.String("key", key), zap.Error(err))
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		b.logger.Warn("Bootstrap encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := b.store.Set(ctx, key, raw); err != nil {
		b.logger.Warn("Bootstrap write failed", zap.String("key", key), zap.Error(err))
	}
}

func (b *Bootstrapper) seedConfig(ctx context.Context) {
	b.setIfAbsent(ctx, configKey, DefaultAIConfig())
}

func (b *Bootstrapper) seedStats(ctx context.Context) {
	b.setIfAbsent(ctx, statsKey, models.LearningStats{})
}

func (b *Bootstrapper) seedKnowledge(ctx context.Context) {
	now := time.Now().UTC()
	items := []models.KnowledgeItem{
		{
			ID:      "seed-cennik",
			Title:   "Cennik usług",
			Content: "Strona wizytówka od 2500 zł, sklep internetowy od 6000 zł. Wycena zawsze indywidualna po analizie zakresu.",
		},
		{
			ID:      "seed-terminy",
			Title:   "Terminy realizacji",
			Content: "Standardowy czas realizacji 2-4 tygodnie. Projekty ekspresowe po wcześniejszym uzgodnieniu.",
		},
		{
			ID:      "seed-oferta",
			Title:   "Zakres oferty",
			Content: "Projektowanie i wdrażanie stron internetowych, sklepy online, opieka serwisowa po wdrożeniu.",
		},
	}
	for _, item := range items {
		item.CreatedAt = now
		b.setIfAbsent(ctx, knowledgePrefix+item.ID, item)
	}
}

func (b *Bootstrapper) seedInquiries(ctx context.Context) {
	cfg := DefaultAIConfig()
	now := time.Now().UTC()

	samples := []struct {
		id    string
		input models.InquiryInput
		age   time.Duration
	}{
		{
			id: "seed-1",
			input: models.InquiryInput{
				CustomerName: "Anna Nowak",
				Email:        "anna.nowak@example.com",
				Subject:      "Pytanie o wycenę",
				Message:      "Dzień dobry, jaka jest cena wykonania strony internetowej dla małej firmy?",
				Category:     models.CategoryPricing,
			},
			age: 48 * time.Hour,
		},
		{
			id: "seed-2",
			input: models.InquiryInput{
				CustomerName: "Piotr Wiśniewski",
				Email:        "p.wisniewski@example.com",
				Subject:      "Termin realizacji",
				Message:      "Interesuje mnie czas realizacji sklepu internetowego. Jaki jest najbliższy wolny termin?",
				Category:     models.CategoryTimeline,
			},
			age: 24 * time.Hour,
		},
		{
			id: "seed-3",
			input: models.InquiryInput{
				CustomerName: "Marek Zieliński",
				Email:        "marek.z@example.com",
				Subject:      "Współpraca",
				Message:      "Dzień dobry, chciałbym porozmawiać o współpracy.",
				Category:     models.CategoryGeneral,
			},
			age: 6 * time.Hour,
		},
	}

	for _, s := range samples {
		suggestion := b.classifier.Classify(s.input.Message, cfg, nil)
		inquiry := models.Inquiry{
			ID:           s.id,
			CustomerName: s.input.CustomerName,
			Email:        s.input.Email,
			Subject:      s.input.Subject,
			Message:      s.input.Message,
			Category:     s.input.Category,
			AISuggestion: suggestion.DraftText,
			Confidence:   suggestion.Confidence,
			Status:       models.StatusPending,
			Timestamp:    now.Add(-s.age),
		}
		b.setIfAbsent(ctx, inquiryPrefix+inquiry.ID, inquiry)
	}
}
