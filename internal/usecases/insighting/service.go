package insighting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

type Service struct {
	generator     TextGenerator
	hasCredential bool
	format        utils.CurrencyFormat
	now           func() time.Time
}

func NewService(generator TextGenerator, cfg *config.Config) *Service {
	return &Service{
		generator:     generator,
		hasCredential: strings.TrimSpace(cfg.Gemini.APIKey) != "",
		format:        cfg.Currency.Format(),
		now:           time.Now,
	}
}

// Narrate gera os insights. Sem retentativa e sem texto alternativo: toda falha volta como erro.
func (s *Service) Narrate(ctx context.Context, snapshot domain.DashboardSnapshot) (*domain.Narrative, error) {
	logger := log.ForContext(ctx)

	if !s.hasCredential || s.generator == nil {
		logger.Warn("insights: chave da API não configurada")
		return nil, ErrMissingCredential
	}

	if snapshot.Status == domain.SnapshotStatusUnavailable {
		return nil, fmt.Errorf("%w: falha ao conectar ao banco de dados", ErrInsufficientData)
	}

	if !snapshot.CanNarrate() {
		return nil, fmt.Errorf("%w: totais mensais ou top clientes vazios", ErrInsufficientData)
	}

	prompt := BuildPrompt(snapshot, s.format)

	logger.WithFields(log.Fields{
		"model":         s.generator.Model(),
		"prompt_length": len(prompt),
	}).Info("insights: solicitando análise ao modelo")

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		logger.WithError(err).Error("insights: erro na geração de texto")
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, errors.New("resposta vazia do modelo"))
	}

	return &domain.Narrative{
		Text:        text,
		Model:       s.generator.Model(),
		GeneratedAt: s.now().UTC(),
	}, nil
}
