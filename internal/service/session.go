package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-recall-keeper/internal/crypto"
	"github.com/MKhiriev/go-recall-keeper/internal/ledger"
	"github.com/MKhiriev/go-recall-keeper/internal/logger"
	"github.com/MKhiriev/go-recall-keeper/internal/scheduler"
	"github.com/MKhiriev/go-recall-keeper/internal/store"
	"github.com/MKhiriev/go-recall-keeper/internal/tags"
	"github.com/MKhiriev/go-recall-keeper/internal/validators"
	"github.com/MKhiriev/go-recall-keeper/models"
)

// Session is the state of one logged-in user: the session key, the item
// ledger, the tag weights and the scheduler memory. It is returned by
// [AuthService.Login] and must be closed with Close or Logout, after which
// every method returns ErrSessionClosed. A Session is not safe for
// concurrent use.
type Session struct {
	username string
	key      []byte
	paths    store.UserPaths

	ledger *ledger.Ledger
	tags   *tags.Table
	engine *scheduler.Engine

	containers store.ContainerStorage
	meta       store.MetaRepository
	validator  validators.Validator
	now        func() time.Time
	logger     *logger.Logger
}

func newSession(username string, key []byte, d Deps) *Session {
	log := d.Logger.GetChildLogger()
	log.Logger = log.With().Str("username", username).Logger()

	table := tags.NewTable(log)
	return &Session{
		username:   username,
		key:        key,
		paths:      d.Paths(username),
		ledger:     ledger.New(d.IDs, d.Now, log),
		tags:       table,
		engine:     scheduler.NewEngine(d.Params, table, d.Now, log),
		containers: d.Containers,
		meta:       d.Meta,
		validator:  d.Validator,
		now:        d.Now,
		logger:     log,
	}
}

// load decrypts the user's containers and restores scheduler memory.
func (s *Session) load(ctx context.Context) error {
	if err := s.containers.Load(ctx, s.paths.Items, s.key, s.ledger); err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	if err := s.containers.Load(ctx, s.paths.Tags, s.key, s.tags); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}

	if s.meta == nil {
		return nil
	}
	state, err := s.meta.LoadMeta(ctx, s.username)
	if err != nil {
		return fmt.Errorf("load scheduler state: %w", err)
	}
	for id := range state {
		if _, ok := s.ledger.Get(id); !ok {
			delete(state, id)
		}
	}
	s.engine.Import(state)
	return nil
}

// Username returns the name of the logged-in user.
func (s *Session) Username() string {
	return s.username
}

// Active reports whether the session has not been closed.
func (s *Session) Active() bool {
	return s.key != nil
}

// Key returns a copy of the session key, or nil once the session is
// closed.
func (s *Session) Key() []byte {
	if s.key == nil {
		return nil
	}
	return append([]byte(nil), s.key...)
}

// AddItem creates a new item due tomorrow and returns it.
func (s *Session) AddItem(ctx context.Context, title, content string, itemTags []string) (models.Item, error) {
	if !s.Active() {
		return models.Item{}, ErrSessionClosed
	}

	item := s.ledger.NewItem(title, content, itemTags)
	if err := s.validator.Validate(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	if _, err := s.ledger.Add(item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// UpdateItem replaces the title, content and tags of an item.
func (s *Session) UpdateItem(ctx context.Context, id, title, content string, itemTags []string) error {
	if !s.Active() {
		return ErrSessionClosed
	}

	candidate := models.Item{Title: title, Tags: ledger.NormalizeTags(itemTags)}
	if err := s.validator.Validate(ctx, candidate, validators.FieldTitle, validators.FieldTags); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return s.ledger.Update(id, title, content, itemTags)
}

// RemoveItem deletes an item together with its scheduler memory.
func (s *Session) RemoveItem(ctx context.Context, id string) error {
	if !s.Active() {
		return ErrSessionClosed
	}
	if !s.ledger.Remove(id) {
		return fmt.Errorf("%w: %s", ledger.ErrItemNotFound, id)
	}

	s.engine.Forget(id)
	if s.meta != nil {
		if err := s.meta.DeleteMeta(ctx, s.username, id); err != nil {
			return fmt.Errorf("delete scheduler state: %w", err)
		}
	}
	return nil
}

// Review rates the item with quality q, updates it in place and returns
// the new state.
func (s *Session) Review(ctx context.Context, id string, q models.Quality) (models.Item, error) {
	if !s.Active() {
		return models.Item{}, ErrSessionClosed
	}

	item, err := s.ledger.Ref(id)
	if err != nil {
		return models.Item{}, err
	}
	if err = s.engine.Review(item, q); err != nil {
		return models.Item{}, err
	}

	logger.FromContext(ctx).Debug().Str("item_id", id).Str("quality", q.String()).Msg("review recorded")
	return item.Clone(), nil
}

// DueItems returns the IDs of items due now in review order. The list is a
// snapshot taken before any of the reviews it is used for.
func (s *Session) DueItems() ([]string, error) {
	if !s.Active() {
		return nil, ErrSessionClosed
	}
	return s.engine.DueItems(s.ledger.All()), nil
}

// Item returns a copy of the item with the given ID.
func (s *Session) Item(id string) (models.Item, bool) {
	if !s.Active() {
		return models.Item{}, false
	}
	return s.ledger.Get(id)
}

// Items returns copies of every item in creation order.
func (s *Session) Items() []models.Item {
	if !s.Active() {
		return nil
	}
	return s.ledger.All()
}

// Meta returns the scheduler memory of an item, if it has any yet.
func (s *Session) Meta(id string) (models.Meta, bool) {
	if !s.Active() {
		return models.Meta{}, false
	}
	return s.engine.Meta(id)
}

// Tags returns a copy of the tag weight table.
func (s *Session) Tags() map[string]int {
	if !s.Active() {
		return nil
	}
	return s.tags.Weights()
}

// SetTagWeight sets the priority weight of tag. Weights below 1 become 1.
func (s *Session) SetTagWeight(tag string, weight int) error {
	if !s.Active() {
		return ErrSessionClosed
	}
	if err := s.tags.SetWeight(tag, weight); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return nil
}

// RemoveTagWeight resets tag to the neutral weight.
func (s *Session) RemoveTagWeight(tag string) error {
	if !s.Active() {
		return ErrSessionClosed
	}
	s.tags.RemoveWeight(tag)
	return nil
}

// Save encrypts and writes the items and tag weights and, when configured,
// stores the scheduler memory.
func (s *Session) Save(ctx context.Context) error {
	if !s.Active() {
		return ErrSessionClosed
	}

	if err := s.containers.Save(ctx, s.paths.Items, s.key, s.ledger); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	if err := s.containers.Save(ctx, s.paths.Tags, s.key, s.tags); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	if s.meta != nil {
		if err := s.meta.SaveMeta(ctx, s.username, s.engine.Export()); err != nil {
			return fmt.Errorf("save scheduler state: %w", err)
		}
	}

	s.logger.Debug().Int("items", s.ledger.Len()).Int("tags", s.tags.Len()).Msg("session saved")
	return nil
}

// Logout zeroes the session key without saving. It is safe to call more
// than once.
func (s *Session) Logout() {
	if s.key == nil {
		return
	}
	crypto.Zero(s.key)
	s.key = nil
	s.logger.Info().Msg("session closed")
}

// Close saves the session and then logs out. The key is zeroed even when
// saving fails.
func (s *Session) Close(ctx context.Context) error {
	if !s.Active() {
		return nil
	}
	defer s.Logout()
	return s.Save(ctx)
}
