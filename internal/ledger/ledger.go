// Package ledger is the in-memory collection of reviewable items for one
// session. Items are addressed by their stable generated ID; the ledger
// itself is not persisted directly, it is serialized by the encrypted
// container storage through MarshalBinary and UnmarshalBinary.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/models"
)

// IDGenerator produces globally unique item identifiers.
type IDGenerator interface {
	Generate() string
}

// Ledger owns the items of a session in insertion order.
type Ledger struct {
	order []string
	items map[string]*models.Item

	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// New returns an empty ledger. now is the clock used for new items.
func New(ids IDGenerator, now func() time.Time, log *logger.Logger) *Ledger {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{
		items:  make(map[string]*models.Item),
		ids:    ids,
		now:    now,
		logger: log,
	}
}

// NewItem builds an item due one day from now with default scheduling
// state. It does not add it to the ledger.
func (l *Ledger) NewItem(title, content string, tags []string) models.Item {
	item := models.Item{
		ID:         l.ids.Generate(),
		Title:      title,
		Content:    content,
		Tags:       NormalizeTags(tags),
		EaseFactor: models.EaseDefault,
	}
	item.ScheduleNext(1, l.now())
	return item
}

// Add inserts item, generating an ID when it has none.
func (l *Ledger) Add(item models.Item) (string, error) {
	if item.ID == "" {
		item.ID = l.ids.Generate()
	}
	if _, ok := l.items[item.ID]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}

	item.Tags = NormalizeTags(item.Tags)
	stored := item.Clone()
	l.items[item.ID] = &stored
	l.order = append(l.order, item.ID)

	l.logger.Debug().Str("item_id", item.ID).Int("tags", len(item.Tags)).Msg("item added")
	return item.ID, nil
}

// Get returns a copy of the item with the given ID.
func (l *Ledger) Get(id string) (models.Item, bool) {
	item, ok := l.items[id]
	if !ok {
		return models.Item{}, false
	}
	return item.Clone(), true
}

// Ref returns the live item so that a review can mutate it in place.
// The pointer stays valid until the item is removed.
func (l *Ledger) Ref(id string) (*models.Item, error) {
	item, ok := l.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return item, nil
}

// Update replaces the editable fields of an existing item: title,
// content and tags. Scheduling state is left untouched.
func (l *Ledger) Update(id, title, content string, tags []string) error {
	item, err := l.Ref(id)
	if err != nil {
		return err
	}
	item.Title = title
	item.Content = content
	item.Tags = NormalizeTags(tags)
	return nil
}

// Remove deletes the item and reports whether it existed.
func (l *Ledger) Remove(id string) bool {
	if _, ok := l.items[id]; !ok {
		return false
	}
	delete(l.items, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.logger.Debug().Str("item_id", id).Msg("item removed")
	return true
}

// All returns copies of every item in insertion order.
func (l *Ledger) All() []models.Item {
	out := make([]models.Item, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.items[id].Clone())
	}
	return out
}

// Len returns the number of items.
func (l *Ledger) Len() int {
	return len(l.order)
}

// reset replaces the contents, keeping the generator, clock and logger.
// On error the ledger is left unchanged.
func (l *Ledger) reset(items []models.Item) error {
	next := &Ledger{
		items:  make(map[string]*models.Item, len(items)),
		ids:    l.ids,
		now:    l.now,
		logger: l.logger,
	}
	for _, item := range items {
		if _, err := next.Add(item); err != nil {
			return err
		}
	}
	l.order, l.items = next.order, next.items
	return nil
}

// NormalizeTags trims every tag, splits on commas and line breaks, drops
// empties and removes duplicates while keeping the first occurrence order.
// Tags are case-sensitive.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		for _, part := range strings.FieldsFunc(raw, isTagSeparator) {
			tag := strings.TrimSpace(part)
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// isTagSeparator reports the runes that cannot appear inside a stored tag:
// the on-disk tag line is comma separated and newline terminated.
func isTagSeparator(r rune) bool {
	return r == ',' || r == '\n' || r == '\r'
}
