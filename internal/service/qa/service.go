package qa

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	docqa "github.com/m-v-r/docqa"
	"github.com/m-v-r/docqa/internal/service/cache"
	"github.com/m-v-r/docqa/sites"
)

// Secrets are the values the hosting platform injects: the tool-platform
// API key, the model API key, and the compressed sites configuration.
type Secrets struct {
	PlatformApiKey string
	GoogleApiKey   string
	SitesConfig    string
}

func (s Secrets) validate() error {
	if len(s.PlatformApiKey) == 0 {
		return errors.New("platform api key secret is missing")
	}
	if len(s.GoogleApiKey) == 0 {
		return errors.New("google api key secret is missing")
	}
	if len(s.SitesConfig) == 0 {
		return errors.New("sites config secret is missing")
	}
	return nil
}

// ChatRequest carries one question plus optional tuning overrides. Nil
// overrides fall back to the platform defaults.
type ChatRequest struct {
	Input            string
	SessionId        string
	Temperature      *float32
	MaxTokens        *int
	TimeoutSeconds   *int
	MaxSearchResults *int
}

func (r ChatRequest) params() docqa.Params {
	params := docqa.DefaultParams()
	if r.Temperature != nil {
		params.Temperature = *r.Temperature
	}
	if r.MaxTokens != nil {
		params.MaxTokens = *r.MaxTokens
	}
	if r.TimeoutSeconds != nil {
		params.Timeout = time.Duration(*r.TimeoutSeconds) * time.Second
	}
	if r.MaxSearchResults != nil {
		params.MaxSearchResults = *r.MaxSearchResults
	}
	return params
}

type builder func(ctx context.Context, sources []sites.Source, params docqa.Params) (*docqa.Agent, error)

// Service is the platform tool entry point: it decodes the sites secret,
// memoizes agents per parameter tuple, and forwards questions.
type Service struct {
	secrets       Secrets
	platformAddrs []string
	agents        *cache.Cache
	build         builder

	decoded    map[string][]sites.Source
	decodedMtx sync.Mutex
	logger     zerolog.Logger
}

func (s *Service) Chat(ctx context.Context, req ChatRequest) (string, error) {
	params := req.params()

	fingerprint := sites.Fingerprint(s.secrets.SitesConfig)

	sources, err := s.sources(fingerprint)
	if err != nil {
		return "", err
	}

	key := cache.NewKey(fingerprint, params)

	agent, hit, err := s.agents.GetOrCreate(key, func() (*docqa.Agent, error) {
		s.logger.Info().
			Float32("temperature", params.Temperature).
			Int("max_tokens", params.MaxTokens).
			Int("max_search_results", params.MaxSearchResults).
			Msg("creating new agent instance")
		return s.build(ctx, sources, params)
	})
	if err != nil {
		return "", fmt.Errorf("failed to build agent: %w", err)
	}

	if hit {
		s.logger.Info().Str("fingerprint", fingerprint).Msg("using cached agent instance")
	}

	sessionId := req.SessionId
	if len(sessionId) == 0 {
		sessionId = fmt.Sprintf("session-%d", time.Now().UnixNano())
	}

	return agent.Chat(ctx, sessionId, req.Input)
}

// sources decodes the sites secret once per distinct blob.
func (s *Service) sources(fingerprint string) ([]sites.Source, error) {
	s.decodedMtx.Lock()
	defer s.decodedMtx.Unlock()

	if sources, ok := s.decoded[fingerprint]; ok {
		return sources, nil
	}

	s.logger.Info().Str("fingerprint", fingerprint).Msg("decompressing sites configuration")

	sources, err := sites.Decode(s.secrets.SitesConfig)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("sites", len(sources)).Msg("sites configuration decoded")

	s.decoded[fingerprint] = sources

	return sources, nil
}

func New(secrets Secrets, platformAddrs []string, opts ...Option) (*Service, error) {
	if err := secrets.validate(); err != nil {
		return nil, err
	}

	options := NewOptions(opts...)

	s := &Service{
		secrets:       secrets,
		platformAddrs: platformAddrs,
		agents:        cache.New(),
		decoded:       map[string][]sites.Source{},
		logger:        zerolog.New(os.Stderr).With().Timestamp().Str("component", "qa").Logger(),
	}

	s.build = options.Builder
	if s.build == nil {
		s.build = func(ctx context.Context, sources []sites.Source, params docqa.Params) (*docqa.Agent, error) {
			return docqa.InitAgent(ctx, secrets.PlatformApiKey, platformAddrs, secrets.GoogleApiKey, sources, params)
		}
	}

	return s, nil
}
