package domain

import "time"

// Narrative é o texto de insights gerado pelo modelo de linguagem
type Narrative struct {
	Text        string    `json:"text"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}
