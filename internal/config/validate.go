package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

var supportedDrivers = map[string]bool{
	"postgres":    true,
	"pgx":         true,
	"sqlite":      true,
	"firebirdsql": true,
}

// Validate verifica combinações inválidas antes de subir a API ou a CLI
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("porta inválida: %q", c.Server.Port))
	}

	if !supportedDrivers[c.Database.Driver] {
		errs = append(errs, fmt.Errorf("driver de banco não suportado: %q", c.Database.Driver))
	}

	if c.Dashboard.TopClientsLimit <= 0 {
		errs = append(errs, errors.New("DASHBOARD_TOP_CLIENTS_LIMIT deve ser maior que zero"))
	}
	if c.Dashboard.LatestPaymentsLimit < 0 || c.Dashboard.RawPreviewLimit < 0 {
		errs = append(errs, errors.New("limites de pré-visualização não podem ser negativos (zero usa o padrão)"))
	}

	if c.Currency.Precision < 0 || c.Currency.Precision > 8 {
		errs = append(errs, fmt.Errorf("precisão monetária inválida: %d", c.Currency.Precision))
	}
	if c.Currency.DecimalSeparator == "" || c.Currency.DecimalSeparator == c.Currency.ThousandsSeparator {
		errs = append(errs, errors.New("separador decimal deve existir e ser diferente do separador de milhar"))
	}

	if c.Seed.Rows <= 0 {
		errs = append(errs, errors.New("SEED_ROWS deve ser maior que zero"))
	}

	if c.ExportSync.Enabled {
		if _, err := cron.ParseStandard(c.ExportSync.CronSchedule); err != nil {
			errs = append(errs, fmt.Errorf("cron de exportação inválido %q: %w", c.ExportSync.CronSchedule, err))
		}
	}

	if c.Auth.Enabled && strings.TrimSpace(c.Auth.Secret) == "" {
		errs = append(errs, errors.New("AUTH_SECRET é obrigatório com autenticação habilitada"))
	}

	return errors.Join(errs...)
}
