package classifier

import (
	"fmt"
	"strings"

	"github.com/jmroz/inquiry-desk/internal/models"
)

// Classifier turns a customer message into a draft response suggestion.
// The knowledge items are optional context; implementations may ignore them.
type Classifier interface {
	Classify(message string, cfg models.AIConfig, knowledge []models.KnowledgeItem) models.Suggestion
}

// rule is one keyword group with the confidence and response builder the
// group carries. Rules are evaluated in order; the first match wins.
type rule struct {
	keywords   []string
	confidence int
	build      func(cfg models.AIConfig) string
}

func (r rule) matches(message string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// RuleClassifier is the deterministic keyword-rule engine. More specific
// intents (price, schedule) come before the generic service-interest group
// so a message mentioning both is not miscategorized.
type RuleClassifier struct {
	rules    []rule
	fallback rule
}

func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{
		rules: []rule{
			{
				keywords:   []string{"cena", "koszt", "wycena"},
				confidence: 92,
				build: func(cfg models.AIConfig) string {
					return fmt.Sprintf(
						"Dziękujemy za zapytanie o wycenę. W %s każdy projekt wyceniamy indywidualnie na podstawie zakresu prac. Przygotujemy dla Państwa szczegółową ofertę w ciągu 24 godzin. W razie pytań prosimy o kontakt: %s.",
						cfg.CompanyName, cfg.ContactEmail)
				},
			},
			{
				keywords:   []string{"czas", "termin", "realizacja"},
				confidence: 88,
				build: func(cfg models.AIConfig) string {
					return fmt.Sprintf(
						"Dziękujemy za wiadomość. Standardowy czas realizacji projektu w %s wynosi od 2 do 4 tygodni, w zależności od zakresu prac. Dokładny termin potwierdzimy po ustaleniu szczegółów. Kontakt: %s.",
						cfg.CompanyName, cfg.ContactEmail)
				},
			},
			{
				keywords:   []string{"usługa", "offer", "produkt"},
				confidence: 85,
				build: func(cfg models.AIConfig) string {
					return fmt.Sprintf(
						"Dziękujemy za zainteresowanie naszą ofertą. %s oferuje pełen zakres usług wraz ze wsparciem po wdrożeniu. Chętnie przedstawimy szczegóły dopasowane do Państwa potrzeb. Prosimy o kontakt: %s.",
						cfg.CompanyName, cfg.ContactEmail)
				},
			},
		},
		fallback: rule{
			confidence: 78,
			build: func(cfg models.AIConfig) string {
				if cfg.ResponseTemplate != "" {
					return cfg.ResponseTemplate
				}
				return fmt.Sprintf(
					"Dziękujemy za wiadomość. Zespół %s zapozna się z Państwa zapytaniem i odpowie najszybciej jak to możliwe. Kontakt: %s.",
					cfg.CompanyName, cfg.ContactEmail)
			},
		},
	}
}

// Classify is deterministic and does no I/O: the same message always yields
// the same suggestion for a given config.
func (c *RuleClassifier) Classify(message string, cfg models.AIConfig, _ []models.KnowledgeItem) models.Suggestion {
	folded := strings.ToLower(message)
	for _, r := range c.rules {
		if r.matches(folded) {
			return models.Suggestion{DraftText: r.build(cfg), Confidence: r.confidence}
		}
	}
	return models.Suggestion{DraftText: c.fallback.build(cfg), Confidence: c.fallback.confidence}
}
