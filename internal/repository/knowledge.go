package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/models"
)

// KnowledgeRepository is plain CRUD over knowledge:* keys.
type KnowledgeRepository struct {
	store kvstore.Store
}

func NewKnowledgeRepository(store kvstore.Store) *KnowledgeRepository {
	return &KnowledgeRepository{store: store}
}

func (r *KnowledgeRepository) Create(ctx context.Context, title, content string) (models.KnowledgeItem, error) {
	item := models.KnowledgeItem{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.save(ctx, item); err != nil {
		return models.KnowledgeItem{}, err
	}
	return item, nil
}

// List returns all items in no defined order.
func (r *KnowledgeRepository) List(ctx context.Context) ([]models.KnowledgeItem, error) {
	entries, err := r.store.GetByPrefix(ctx, knowledgePrefix)
	if err != nil {
		return nil, err
	}

	items := make([]models.KnowledgeItem, 0, len(entries))
	for _, e := range entries {
		var item models.KnowledgeItem
		if err := json.Unmarshal(e.Value, &item); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, e.Key, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Delete removes the item unconditionally; deleting an absent id succeeds.
func (r *KnowledgeRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, knowledgePrefix+id)
}

func (r *KnowledgeRepository) save(ctx context.Context, item models.KnowledgeItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("error encoding knowledge item: %v", err)
	}
	return r.store.Set(ctx, knowledgePrefix+item.ID, raw)
}
