package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/growth-dashboard-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

const defaultTimeout = 60 * time.Second

var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY não configurada")

type GeminiService struct {
	cfg    *config.Config
	Client geminiclient.Client
}

func New(cfg *config.Config, client geminiclient.Client) *GeminiService {
	return &GeminiService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *GeminiService) Model() string {
	return s.cfg.Gemini.Model
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(s.cfg.Gemini.APIKey)
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	timeout := defaultTimeout
	if s.cfg.Gemini.TimeoutSeconds > 0 {
		timeout = time.Duration(s.cfg.Gemini.TimeoutSeconds) * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := s.Client.GenerateContent(ctx, geminiclient.GenerateParams{
		APIKey: apiKey,
		Model:  s.cfg.Gemini.Model,
		Prompt: prompt,
	})
	if err != nil {
		return "", errors.Wrap(err, "gemini")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"model":    s.cfg.Gemini.Model,
		"duration": time.Since(start).String(),
	}).Info("gemini: resposta recebida")

	return text, nil
}
