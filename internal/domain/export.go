package domain

import "time"

// Table é o conteúdo genérico de uma tabela lida com SELECT *
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

type ExportResult struct {
	ID           string    `json:"id"`
	Table        string    `json:"table"`
	Path         string    `json:"path"`
	RowsRead     int       `json:"rows_read"`
	RowsExported int       `json:"rows_exported"`
	FinishedAt   time.Time `json:"finished_at"`
}

// SeedPlan descreve uma recarga completa dos dados de teste
type SeedPlan struct {
	DeleteOrder []string
	Inserts     []Table
}

type SeedSummary struct {
	RowsPerTable int      `json:"rows_per_table"`
	Tables       []string `json:"tables"`
	RandomSeed   uint64   `json:"random_seed"`
}
