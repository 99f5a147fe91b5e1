package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/blacnova/dashboard-server/internal/document"
	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
)

// Content orchestrates read-modify-write cycles against a client's remote
// JSON document. Every write carries the version tag of the revision it
// was based on; a stale tag surfaces as ErrVersionConflict and is never
// retried automatically. The caller re-fetches and resubmits.
type Content struct {
	registry model.ClientRegistry
	store    model.ContentStore
	logger   *logger.Logger
}

func NewContent(registry model.ClientRegistry, store model.ContentStore, logger *logger.Logger) *Content {
	return &Content{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// UpdateContentParams contains parameters to update a client's document.
// Exactly one of Replace and Patch must be set. Replace swaps the whole
// document and requires the caller's version tag; Patch applies dotted-path
// assignments onto the current document, preserving unrelated fields.
type UpdateContentParams struct {
	ClientID string
	Replace  []byte
	Patch    map[string]any
	SHA      string
}

// Get fetches the current document and version tag for a client.
func (s *Content) Get(ctx context.Context, clientID string) (document.Document, string, error) {
	profile, err := s.resolve(clientID)
	if err != nil {
		return nil, "", err
	}

	file, err := s.store.GetFile(ctx, profile.Repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch content: %w", err)
	}

	doc, err := document.Parse(file.Content)
	if err != nil {
		// The repository holds something that is not a JSON object;
		// that is an upstream data problem, not caller input.
		return nil, "", fmt.Errorf("%w: invalid JSON in repository", model.ErrUpstream)
	}

	return doc, file.SHA, nil
}

// Update runs one read-merge-validate-write cycle and returns the committed
// document with its new version tag.
func (s *Content) Update(ctx context.Context, params UpdateContentParams) (document.Document, string, error) {
	profile, err := s.resolve(params.ClientID)
	if err != nil {
		return nil, "", err
	}

	if params.Replace == nil && len(params.Patch) == 0 {
		return nil, "", fmt.Errorf("%w: content or patch is required", model.ErrInvalidInput)
	}

	current, err := s.store.GetFile(ctx, profile.Repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch content: %w", err)
	}

	var doc document.Document
	switch {
	case params.Replace != nil:
		// Full replacement discards the stored document, so the caller
		// must prove they saw the revision they are overwriting.
		if params.SHA == "" {
			return nil, "", fmt.Errorf("%w: sha is required when replacing content", model.ErrInvalidInput)
		}
		if params.SHA != current.SHA {
			return nil, "", fmt.Errorf("%w: document was modified since it was fetched", model.ErrVersionConflict)
		}
		doc, err = document.Parse(params.Replace)
		if err != nil {
			return nil, "", err
		}
	default:
		if params.SHA != "" && params.SHA != current.SHA {
			return nil, "", fmt.Errorf("%w: document was modified since it was fetched", model.ErrVersionConflict)
		}
		doc, err = document.Parse(current.Content)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid JSON in repository", model.ErrUpstream)
		}
		doc.Apply(params.Patch)
	}

	encoded, err := doc.Encode()
	if err != nil {
		return nil, "", err
	}

	message := fmt.Sprintf("Update content via admin dashboard - %s", time.Now().Format("2006-01-02 15:04:05"))
	newSHA, err := s.store.PutFile(ctx, profile.Repo, encoded, message, current.SHA)
	if err != nil {
		return nil, "", fmt.Errorf("failed to commit content: %w", err)
	}

	s.logger.Info("Content service: document updated",
		"client", params.ClientID,
		"sha", newSHA)

	return doc, newSHA, nil
}

// AppendAccountEntry adds a directory entry for the account to the
// client's remote document via a read-modify-write cycle.
func (s *Content) AppendAccountEntry(ctx context.Context, clientID string, account model.Account) error {
	profile, err := s.resolve(clientID)
	if err != nil {
		return err
	}

	current, err := s.store.GetFile(ctx, profile.Repo)
	if err != nil {
		return fmt.Errorf("failed to fetch directory document: %w", err)
	}

	doc, err := document.Parse(current.Content)
	if err != nil {
		return fmt.Errorf("%w: invalid JSON in repository", model.ErrUpstream)
	}

	doc.Set([]string{directoryKey(account.FullName)}, map[string]any{
		"name":     account.FullName,
		"email":    account.Email,
		"username": directoryUsername(account.FullName),
	})

	encoded, err := doc.Encode()
	if err != nil {
		return err
	}

	if _, err := s.store.PutFile(ctx, profile.Repo, encoded, "Add new user from dashboard", current.SHA); err != nil {
		return fmt.Errorf("failed to commit directory document: %w", err)
	}

	return nil
}

func (s *Content) resolve(clientID string) (model.ClientProfile, error) {
	if clientID == "" {
		return model.ClientProfile{}, fmt.Errorf("%w: client id is required", model.ErrInvalidInput)
	}

	profile, ok := s.registry.Get(clientID)
	if !ok {
		return model.ClientProfile{}, fmt.Errorf("%w: unknown client %q", model.ErrNotFound, clientID)
	}
	return profile, nil
}

func directoryKey(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func directoryUsername(fullName string) string {
	first := strings.Fields(fullName)
	if len(first) == 0 {
		return ""
	}
	return strings.ToLower(first[0])
}
