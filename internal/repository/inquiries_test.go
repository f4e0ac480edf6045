package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jmroz/inquiry-desk/internal/classifier"
	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/models"
)

func newTestRepos(t *testing.T) (*InquiryRepository, *StatsAggregator, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	logger := zap.NewNop()
	configStore := NewConfigStore(store)
	knowledge := NewKnowledgeRepository(store)
	stats := NewStatsAggregator(store)
	inquiries := NewInquiryRepository(store, classifier.NewRuleClassifier(), configStore, knowledge, stats, nil, logger)
	return inquiries, stats, store
}

func testInput(message string) models.InquiryInput {
	return models.InquiryInput{
		CustomerName: "Jan Kowalski",
		Email:        "jan@example.com",
		Subject:      "Zapytanie",
		Message:      message,
		Category:     models.CategoryGeneral,
	}
}

func TestCreateAssignsFields(t *testing.T) {
	repo, _, _ := newTestRepos(t)
	ctx := context.Background()

	inquiry, err := repo.Create(ctx, testInput("Jaka jest wycena strony?"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if inquiry.ID == "" {
		t.Error("Create did not assign an id")
	}
	if inquiry.Status != models.StatusPending {
		t.Errorf("Status = %s, want pending", inquiry.Status)
	}
	if inquiry.Timestamp.IsZero() {
		t.Error("Create did not assign a timestamp")
	}
	if inquiry.Confidence != 92 {
		t.Errorf("Confidence = %d, want 92 for a pricing message", inquiry.Confidence)
	}
	if inquiry.AISuggestion == "" {
		t.Error("Create did not attach a suggestion")
	}
	// Category is user-declared metadata and survives even when the
	// classifier disagrees.
	if inquiry.Category != models.CategoryGeneral {
		t.Errorf("Category = %s, want general", inquiry.Category)
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	repo, _, _ := newTestRepos(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		inquiry, err := repo.Create(ctx, testInput("dzień dobry"))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[inquiry.ID] {
			t.Fatalf("duplicate id %q", inquiry.ID)
		}
		seen[inquiry.ID] = true
	}
}

func TestCreateFallbackConfidence(t *testing.T) {
	repo, _, _ := newTestRepos(t)
	ctx := context.Background()

	inquiry, err := repo.Create(ctx, testInput("dzień dobry"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inquiry.Confidence != 78 {
		t.Errorf("Confidence = %d, want 78 for a message with no keyword match", inquiry.Confidence)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo, _, _ := newTestRepos(t)
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	var created []models.Inquiry
	for i := 0; i < 5; i++ {
		inquiry, err := repo.Create(ctx, testInput("dzień dobry"))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		created = append(created, inquiry)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != len(created) {
		t.Fatalf("List returned %d inquiries, want %d", len(listed), len(created))
	}
	for i := range listed {
		want := created[len(created)-1-i]
		if listed[i].ID != want.ID {
			t.Errorf("List[%d].ID = %s, want %s (newest first)", i, listed[i].ID, want.ID)
		}
	}
}

func TestSetStatusUnknownID(t *testing.T) {
	repo, stats, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := repo.SetStatus(ctx, "no-such-id", models.StatusApproved, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetStatus(unknown) = %v, want ErrNotFound", err)
	}

	// The failed transition must leave the stats untouched.
	got, err := stats.Get(ctx)
	if err != nil {
		t.Fatalf("stats Get failed: %v", err)
	}
	if got.TotalProcessed != 0 {
		t.Errorf("TotalProcessed = %d after failed transition, want 0", got.TotalProcessed)
	}
}

func TestSetStatusApproved(t *testing.T) {
	repo, stats, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testInput("Jaka jest wycena strony?"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.SetStatus(ctx, created.ID, models.StatusApproved, "")
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Errorf("Status = %s, want approved", updated.Status)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("SetStatus did not set UpdatedAt")
	}

	got, err := stats.Get(ctx)
	if err != nil {
		t.Fatalf("stats Get failed: %v", err)
	}
	if got.Approved != 1 || got.TotalProcessed != 1 {
		t.Errorf("stats = %+v, want approved=1 totalProcessed=1", got)
	}
	if got.AvgAccuracy != 100 {
		t.Errorf("AvgAccuracy = %d, want 100", got.AvgAccuracy)
	}
}

func TestSetStatusFinalResponse(t *testing.T) {
	repo, _, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testInput("dzień dobry"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := repo.SetStatus(ctx, created.ID, models.StatusApproved, "Poprawiona odpowiedź.")
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.FinalResponse != "Poprawiona odpowiedź." {
		t.Errorf("FinalResponse = %q, want the reviewer's edit", updated.FinalResponse)
	}
	// The original suggestion stays untouched.
	if updated.AISuggestion != created.AISuggestion {
		t.Errorf("AISuggestion changed on transition")
	}
}

func TestSetStatusTerminalGuard(t *testing.T) {
	repo, stats, _ := newTestRepos(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testInput("dzień dobry"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.SetStatus(ctx, created.ID, models.StatusRejected, ""); err != nil {
		t.Fatalf("first SetStatus failed: %v", err)
	}

	_, err = repo.SetStatus(ctx, created.ID, models.StatusApproved, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second SetStatus = %v, want ErrInvalidTransition", err)
	}

	// No double counting.
	got, err := stats.Get(ctx)
	if err != nil {
		t.Fatalf("stats Get failed: %v", err)
	}
	if got.TotalProcessed != 1 || got.Rejected != 1 || got.Approved != 0 {
		t.Errorf("stats = %+v, want exactly one rejected transition counted", got)
	}
}

func TestGetCorruptRecord(t *testing.T) {
	repo, _, store := newTestRepos(t)
	ctx := context.Background()

	if err := store.Set(ctx, inquiryPrefix+"bad", []byte(`{not json`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err := repo.Get(ctx, "bad")
	if !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("Get(corrupt) = %v, want ErrCorruptRecord", err)
	}
}

func TestEndToEndApprovalScenario(t *testing.T) {
	repo, stats, _ := newTestRepos(t)
	ctx := context.Background()

	before, err := stats.Get(ctx)
	if err != nil {
		t.Fatalf("stats Get failed: %v", err)
	}

	input := testInput("Jaka jest wycena strony?")
	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Confidence != 92 {
		t.Fatalf("Confidence = %d, want 92 (pricing rule)", created.Confidence)
	}

	if _, err := repo.SetStatus(ctx, created.ID, models.StatusApproved, ""); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	after, err := stats.Get(ctx)
	if err != nil {
		t.Fatalf("stats Get failed: %v", err)
	}
	if after.Approved != before.Approved+1 {
		t.Errorf("Approved = %d, want %d", after.Approved, before.Approved+1)
	}
	if after.TotalProcessed != before.TotalProcessed+1 {
		t.Errorf("TotalProcessed = %d, want %d", after.TotalProcessed, before.TotalProcessed+1)
	}
}
