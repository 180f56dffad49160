package seeding

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/vfg2006/growth-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/growth-dashboard-api/internal/config"
	"github.com/vfg2006/growth-dashboard-api/internal/domain"
	"github.com/vfg2006/growth-dashboard-api/pkg/log"
)

const DefaultRows = 50

var ErrInvalidRows = errors.New("quantidade de registros por tabela deve ser maior que zero")

type Service struct {
	seedRepo   repository.SeedRepository
	rows       int
	randomSeed uint64
	now        func() time.Time
}

func NewService(seedRepo repository.SeedRepository, cfg *config.Config) *Service {
	rows := cfg.Seed.Rows
	if rows == 0 {
		rows = DefaultRows
	}

	return &Service{
		seedRepo:   seedRepo,
		rows:       rows,
		randomSeed: uint64(cfg.Seed.RandomSeed),
		now:        time.Now,
	}
}

// Seed recria os dados de teste. Semente zero usa o relógio, então cada execução gera dados diferentes.
func (s *Service) Seed(ctx context.Context) (*domain.SeedSummary, error) {
	if s.rows <= 0 {
		return nil, ErrInvalidRows
	}

	now := s.now()
	seed := s.randomSeed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{"rows": s.rows, "seed": seed})
	logger.Info("seed: gerando dados de teste")

	plan := BuildPlan(rand.New(rand.NewPCG(seed, seed)), s.rows, now)

	if err := s.seedRepo.Reseed(ctx, plan); err != nil {
		logger.WithError(err).Error("seed: erro ao inserir dados, alterações desfeitas")
		return nil, err
	}

	tables := make([]string, 0, len(plan.Inserts))
	for _, table := range plan.Inserts {
		tables = append(tables, table.Name)
	}

	return &domain.SeedSummary{
		RowsPerTable: s.rows,
		Tables:       tables,
		RandomSeed:   seed,
	}, nil
}
