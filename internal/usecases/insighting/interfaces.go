package insighting

import (
	"context"

	"github.com/vfg2006/growth-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/insighting_mock.go -package=mocks

// TextGenerator envia um prompt ao serviço de geração de texto e devolve a resposta
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Narrator transforma um snapshot do dashboard em insights de negócio
type Narrator interface {
	Narrate(ctx context.Context, snapshot domain.DashboardSnapshot) (*domain.Narrative, error)
}
