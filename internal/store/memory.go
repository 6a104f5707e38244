package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abd0-omar/url-shortener-with-a-twist/internal/recipients"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/shortener"
	"github.com/abd0-omar/url-shortener-with-a-twist/internal/tokens"
)

type identity struct {
	name  string
	email string
}

// memoryState holds the raw tables. Methods assume the caller serializes
// access.
type memoryState struct {
	links         map[string]shortener.Link
	recipientIDs  map[identity]uuid.UUID
	recipientRows map[uuid.UUID]time.Time
	tokenRows     map[string]tokens.LinkToken
}

func newMemoryState() *memoryState {
	return &memoryState{
		links:         make(map[string]shortener.Link),
		recipientIDs:  make(map[identity]uuid.UUID),
		recipientRows: make(map[uuid.UUID]time.Time),
		tokenRows:     make(map[string]tokens.LinkToken),
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()

	for k, v := range s.links {
		c.links[k] = v
	}

	for k, v := range s.recipientIDs {
		c.recipientIDs[k] = v
	}

	for k, v := range s.recipientRows {
		c.recipientRows[k] = v
	}

	for k, v := range s.tokenRows {
		c.tokenRows[k] = v
	}

	return c
}

func (s *memoryState) saveLink(link *shortener.Link) error {
	if _, ok := s.links[link.ID]; ok {
		return shortener.ErrDuplicateID
	}

	s.links[link.ID] = *link

	return nil
}

func (s *memoryState) getLink(id string) (*shortener.Link, error) {
	link, ok := s.links[id]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &link, nil
}

func (s *memoryState) findRecipient(name, email string) (uuid.UUID, error) {
	id, ok := s.recipientIDs[identity{name: name, email: email}]
	if !ok {
		return uuid.Nil, recipients.ErrNotFound
	}

	return id, nil
}

func (s *memoryState) insertRecipient(name, email string, receivedLinkAt time.Time) (uuid.UUID, error) {
	key := identity{name: name, email: email}
	if _, ok := s.recipientIDs[key]; ok {
		return uuid.Nil, recipients.ErrDuplicateIdentity
	}

	id := uuid.New()
	s.recipientIDs[key] = id
	s.recipientRows[id] = receivedLinkAt

	return id, nil
}

func (s *memoryState) issueToken(token *tokens.LinkToken) error {
	s.tokenRows[token.Token] = *token

	return nil
}

func (s *memoryState) tokenStatus(recipientID uuid.UUID, linkID string) (tokens.Status, error) {
	status := tokens.StatusAbsent

	var freshest time.Time

	for _, row := range s.tokenRows {
		if row.RecipientID != recipientID || row.LinkID != linkID {
			continue
		}

		if row.Status == tokens.StatusConfirmed {
			return tokens.StatusConfirmed, nil
		}

		if status == tokens.StatusAbsent || row.Expiration.After(freshest) {
			status = row.Status
			freshest = row.Expiration
		}
	}

	return status, nil
}

func (s *memoryState) confirmToken(token string) (string, error) {
	row, ok := s.tokenRows[token]
	if !ok {
		return "", tokens.ErrNotFound
	}

	// Expiration only gates the pending -> confirmed flip; re-confirming
	// an already confirmed token stays a no-op.
	if row.Status != tokens.StatusConfirmed && row.Expired(time.Now()) {
		return "", tokens.ErrExpired
	}

	row.Status = tokens.StatusConfirmed
	s.tokenRows[token] = row

	return row.LinkID, nil
}

// MemoryStore is an in-memory implementation of Store for tests. InTx
// mimics transactional semantics by running fn against a copy of the state
// and swapping it in only on success.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

func (m *MemoryStore) InTx(_ context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	shadow := m.state.clone()

	if err := fn(&txMemoryStore{state: shadow}); err != nil {
		return err
	}

	m.state = shadow

	return nil
}

func (m *MemoryStore) SaveLink(_ context.Context, link *shortener.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.saveLink(link)
}

func (m *MemoryStore) GetLink(_ context.Context, id string) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.getLink(id)
}

func (m *MemoryStore) FindRecipient(_ context.Context, name, email string) (uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.findRecipient(name, email)
}

func (m *MemoryStore) InsertRecipient(_ context.Context, name, email string, receivedLinkAt time.Time) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.insertRecipient(name, email, receivedLinkAt)
}

func (m *MemoryStore) IssueToken(_ context.Context, token *tokens.LinkToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.issueToken(token)
}

func (m *MemoryStore) TokenStatus(_ context.Context, recipientID uuid.UUID, linkID string) (tokens.Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state.tokenStatus(recipientID, linkID)
}

func (m *MemoryStore) ConfirmToken(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.confirmToken(token)
}

// txMemoryStore is the transaction-scoped view handed to InTx callbacks.
// The outer store's lock is held for the duration of the callback.
type txMemoryStore struct {
	state *memoryState
}

func (t *txMemoryStore) InTx(_ context.Context, fn func(tx Store) error) error {
	return fn(t)
}

func (t *txMemoryStore) SaveLink(_ context.Context, link *shortener.Link) error {
	return t.state.saveLink(link)
}

func (t *txMemoryStore) GetLink(_ context.Context, id string) (*shortener.Link, error) {
	return t.state.getLink(id)
}

func (t *txMemoryStore) FindRecipient(_ context.Context, name, email string) (uuid.UUID, error) {
	return t.state.findRecipient(name, email)
}

func (t *txMemoryStore) InsertRecipient(_ context.Context, name, email string, receivedLinkAt time.Time) (uuid.UUID, error) {
	return t.state.insertRecipient(name, email, receivedLinkAt)
}

func (t *txMemoryStore) IssueToken(_ context.Context, token *tokens.LinkToken) error {
	return t.state.issueToken(token)
}

func (t *txMemoryStore) TokenStatus(_ context.Context, recipientID uuid.UUID, linkID string) (tokens.Status, error) {
	return t.state.tokenStatus(recipientID, linkID)
}

func (t *txMemoryStore) ConfirmToken(_ context.Context, token string) (string, error) {
	return t.state.confirmToken(token)
}

// Compile-time checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*txMemoryStore)(nil)
)
