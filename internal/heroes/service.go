package heroes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/hero-client/internal/domain"
	"github.com/samvad-hq/hero-client/internal/logger"
	"github.com/samvad-hq/hero-client/pkg/httpclient"
	"github.com/samvad-hq/hero-client/pkg/notifiers"
)

const (
	// DefaultBasePath is the heroes resource path relative to the API base URL.
	DefaultBasePath = "api/heroes"

	messagePrefix = "HeroService: "
)

// jsonHeaders are sent with every mutating request.
var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// Service translates hero operations into HTTP calls. Operations never
// return errors: failures are logged, reported to the notifier and replaced
// by a fallback value.
type Service struct {
	transport httpclient.Client
	notifier  notifiers.Notifier
	log       logger.Logger
	basePath  string
}

// Option customizes a Service.
type Option func(*Service)

// WithBasePath overrides the heroes resource path.
func WithBasePath(path string) Option {
	return func(s *Service) {
		if path = strings.Trim(strings.TrimSpace(path), "/"); path != "" {
			s.basePath = path
		}
	}
}

// NewService wires a hero client with its transport and notifier.
func NewService(transport httpclient.Client, notifier notifiers.Notifier, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	s := &Service{
		transport: transport,
		notifier:  notifier,
		log:       log,
		basePath:  DefaultBasePath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListHeroes fetches every hero. Falls back to an empty slice.
func (s *Service) ListHeroes(ctx context.Context) []domain.Hero {
	var heroes []domain.Hero
	if err := s.getJSON(ctx, s.basePath, &heroes); err != nil {
		s.handleError("getHeroes", err)
		return []domain.Hero{}
	}
	s.notify("Got All The Heroes!")
	return nonNil(heroes)
}

// GetHero fetches a single hero by id. Falls back to nil.
func (s *Service) GetHero(ctx context.Context, id int) *domain.Hero {
	var hero *domain.Hero
	if err := s.getJSON(ctx, s.heroURL(id), &hero); err != nil {
		s.handleError(fmt.Sprintf("getHero id=%d", id), err)
		return nil
	}
	s.notify(fmt.Sprintf("Got The Hero At ID #%d", id))
	return hero
}

// UpdateHero replaces the stored hero. The backend echo is returned when it
// sends one; nil otherwise and on failure.
func (s *Service) UpdateHero(ctx context.Context, hero domain.Hero) *domain.Hero {
	updated, err := s.sendJSON(ctx, http.MethodPut, s.basePath, hero)
	if err != nil {
		s.handleError("updateHero", err)
		return nil
	}
	s.notify(fmt.Sprintf("Updated Hero With ID #%d", hero.ID))
	return updated
}

// AddHero creates a hero and returns it with its backend-assigned id. Falls back to nil.
func (s *Service) AddHero(ctx context.Context, hero domain.Hero) *domain.Hero {
	created, err := s.sendJSON(ctx, http.MethodPost, s.basePath, hero)
	if err != nil {
		s.handleError("addHero", err)
		return nil
	}
	id := hero.ID
	if created != nil {
		id = created.ID
	}
	s.notify(fmt.Sprintf("Added Hero with ID #%d", id))
	return created
}

// DeleteHero removes the referenced hero. Falls back to nil.
func (s *Service) DeleteHero(ctx context.Context, ref domain.HeroRef) *domain.Hero {
	id := ref.ID()
	deleted, err := s.sendJSON(ctx, http.MethodDelete, s.heroURL(id), nil)
	if err != nil {
		s.handleError("deleteHero", err)
		return nil
	}
	s.notify(fmt.Sprintf("Deleted Hero with ID #%d", id))
	return deleted
}

// SearchHeroes returns heroes whose name matches term. A blank term
// short-circuits to an empty slice without touching the network or notifier.
func (s *Service) SearchHeroes(ctx context.Context, term string) []domain.Hero {
	if strings.TrimSpace(term) == "" {
		return []domain.Hero{}
	}

	var heroes []domain.Hero
	if err := s.getJSON(ctx, s.basePath+"/?name="+url.QueryEscape(term), &heroes); err != nil {
		s.handleError("searchHero", err)
		return []domain.Hero{}
	}
	s.notify(fmt.Sprintf("Found Heroes matching %s!", term))
	return nonNil(heroes)
}

func (s *Service) heroURL(id int) string {
	return s.basePath + "/" + strconv.Itoa(id)
}

func (s *Service) getJSON(ctx context.Context, target string, out any) error {
	resp, err := s.transport.Get(ctx, target, nil)
	if err != nil {
		return err
	}
	if err := httpclient.CheckResponse(http.MethodGet, target, resp); err != nil {
		return err
	}
	return decode(http.MethodGet, target, resp, out)
}

// sendJSON issues a mutating request and decodes an optional hero body.
// An empty or null body yields a nil hero.
func (s *Service) sendJSON(ctx context.Context, method, target string, body any) (*domain.Hero, error) {
	var (
		resp httpclient.Response
		err  error
	)
	switch method {
	case http.MethodPut:
		resp, err = s.transport.Put(ctx, target, body, jsonHeaders)
	case http.MethodPost:
		resp, err = s.transport.Post(ctx, target, body, jsonHeaders)
	case http.MethodDelete:
		resp, err = s.transport.Delete(ctx, target, jsonHeaders)
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}
	if err != nil {
		return nil, err
	}
	if err := httpclient.CheckResponse(method, target, resp); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(resp.Body()))) == 0 {
		return nil, nil
	}

	var hero *domain.Hero
	if err := decode(method, target, resp, &hero); err != nil {
		// The update echo is free-form: any valid JSON that is not a hero counts as no echo.
		if method == http.MethodPut && json.Valid(resp.Body()) {
			return nil, nil
		}
		return nil, err
	}
	return hero, nil
}

func decode(method, target string, resp httpclient.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &httpclient.Error{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode(),
			StatusText: http.StatusText(resp.StatusCode()),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// handleError reports the raw failure on the diagnostic logger, then
// notifies with the operation name and status text.
func (s *Service) handleError(operation string, err error) {
	s.log.ErrorObj("hero operation failed", "hero_error", map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
	s.notify(fmt.Sprintf("OPERATION: %s. ||| STATUS TEXT: %s", operation, httpclient.StatusText(err)))
}

func (s *Service) notify(message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Add(messagePrefix + message)
}

func nonNil(heroes []domain.Hero) []domain.Hero {
	if heroes == nil {
		return []domain.Hero{}
	}
	return heroes
}
