package insighting

import "errors"

var (
	ErrMissingCredential = errors.New("a API da IA não foi configurada: defina GOOGLE_API_KEY")
	ErrInsufficientData  = errors.New("dados insuficientes para gerar insights")
	ErrGeneration        = errors.New("erro ao chamar a API da IA")
)
