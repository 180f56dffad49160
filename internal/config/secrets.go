package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Secrets espelha o arquivo de segredos do painel:
//
//	GOOGLE_API_KEY = "..."
//	[connections.firebird]
//	dsn = "localhost:3050/dados/EMPRESA.FDB"
//	user = "SYSDBA"
//	password = "masterkey"
//	[[users]]
//	email = "admin@empresa.com"
//	password_hash = "$2a$10$..."
//	role = "admin"
//	active = true
type Secrets struct {
	GoogleAPIKey string                      `toml:"GOOGLE_API_KEY"`
	AuthSecret   string                      `toml:"AUTH_SECRET"`
	Connections  map[string]SecretConnection `toml:"connections"`
	Users        []User                      `toml:"users"`
}

type SecretConnection struct {
	DSN      string `toml:"dsn"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// driverAliases mapeia o nome da seção em [connections.*] para o driver SQL
var driverAliases = map[string]string{
	"firebird":    "firebirdsql",
	"firebirdsql": "firebirdsql",
	"postgres":    "postgres",
	"postgresql":  "postgres",
	"pgx":         "pgx",
	"sqlite":      "sqlite",
}

// LoadSecrets lê o arquivo TOML de segredos. Arquivo inexistente não é erro.
func LoadSecrets(path string) (*Secrets, error) {
	secrets := &Secrets{}
	if path == "" {
		return secrets, nil
	}

	_, err := toml.DecodeFile(path, secrets)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Debugf("Arquivo de segredos %s não encontrado", path)
		return secrets, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de segredos %s: %w", path, err)
	}

	logrus.Infof("Arquivo de segredos carregado de: %s", path)
	return secrets, nil
}

// applySecrets preenche o que não foi definido por variável de ambiente
func (c *Config) applySecrets(s *Secrets) {
	if s == nil {
		return
	}

	c.Gemini.APIKey = envOrSecret("GOOGLE_API_KEY", c.Gemini.APIKey, s.GoogleAPIKey)
	c.Auth.Secret = envOrSecret("AUTH_SECRET", c.Auth.Secret, s.AuthSecret)
	c.Auth.Users = s.Users

	name, conn, ok := s.connectionFor(c.Database.Driver)
	if !ok {
		return
	}

	if _, driverSet := os.LookupEnv("DATABASE_DRIVER"); !driverSet {
		c.Database.Driver = driverAliases[name]
	}
	c.Database.URL = envOrSecret("DATABASE_URL", c.Database.URL, conn.DSN)
	c.Database.User = envOrSecret("DATABASE_USER", c.Database.User, conn.User)
	c.Database.Password = envOrSecret("DATABASE_PASSWORD", c.Database.Password, conn.Password)
}

// connectionFor devolve a conexão do driver pedido ou, sem DATABASE_DRIVER
// definido, a primeira conexão conhecida em ordem alfabética
func (s *Secrets) connectionFor(driver string) (string, SecretConnection, bool) {
	names := make([]string, 0, len(s.Connections))
	for name := range s.Connections {
		if _, known := driverAliases[name]; known {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if driverAliases[name] == driver {
			return name, s.Connections[name], true
		}
	}

	if _, driverSet := os.LookupEnv("DATABASE_DRIVER"); !driverSet && len(names) > 0 {
		return names[0], s.Connections[names[0]], true
	}

	return "", SecretConnection{}, false
}

func envOrSecret(envKey, current, secret string) string {
	if _, ok := os.LookupEnv(envKey); ok {
		return current
	}
	if secret != "" {
		return secret
	}
	return current
}
