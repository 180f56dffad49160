package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/growth-dashboard-api/pkg/utils"
)

type Config struct {
	App         App        `mapstructure:",squash"`
	Server      Server     `mapstructure:",squash"`
	Database    Database   `mapstructure:",squash"`
	Gemini      Gemini     `mapstructure:",squash"`
	Auth        Auth       `mapstructure:",squash"`
	Dashboard   Dashboard  `mapstructure:",squash"`
	Currency    Currency   `mapstructure:",squash"`
	Export      Export     `mapstructure:",squash"`
	ExportSync  ExportSync `mapstructure:",squash"`
	Seed        Seed       `mapstructure:",squash"`
	SecretsFile string     `mapstructure:"secrets_file"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Database aceita postgres, pgx, sqlite e firebirdsql. Para sqlite a URL é o caminho do arquivo.
type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Migrate  bool   `mapstructure:"database_migrate"`
}

type Gemini struct {
	APIKey         string `mapstructure:"google_api_key"`
	Model          string `mapstructure:"gemini_model"`
	TimeoutSeconds int    `mapstructure:"gemini_timeout_seconds"`
}

type Auth struct {
	Enabled       bool   `mapstructure:"auth_enabled"`
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
	Users         []User `mapstructure:"-"`
}

// User é um usuário de acesso ao painel, carregado do arquivo de segredos.
type User struct {
	Name         string `toml:"name"`
	Email        string `toml:"email"`
	PasswordHash string `toml:"password_hash"`
	Role         string `toml:"role"`
	Active       bool   `toml:"active"`
}

type Dashboard struct {
	TopClientsLimit     int `mapstructure:"dashboard_top_clients_limit"`
	LatestPaymentsLimit int `mapstructure:"dashboard_latest_payments_limit"`
	RawPreviewLimit     int `mapstructure:"dashboard_raw_preview_limit"`
}

type Currency struct {
	Symbol             string `mapstructure:"currency_symbol"`
	ThousandsSeparator string `mapstructure:"currency_thousands_separator"`
	DecimalSeparator   string `mapstructure:"currency_decimal_separator"`
	Precision          int    `mapstructure:"currency_precision"`
}

// Format converte a configuração para o formatador usado no painel e no prompt
func (c Currency) Format() utils.CurrencyFormat {
	return utils.CurrencyFormat{
		Symbol:             c.Symbol,
		ThousandsSeparator: c.ThousandsSeparator,
		DecimalSeparator:   c.DecimalSeparator,
		Precision:          int32(c.Precision),
	}
}

type Export struct {
	Table      string `mapstructure:"export_table"`
	OutputPath string `mapstructure:"export_output_path"`
	SheetName  string `mapstructure:"export_sheet_name"`
	Dir        string `mapstructure:"export_dir"`
}

type ExportSync struct {
	CronSchedule string `mapstructure:"export_sync_cron"`
	Enabled      bool   `mapstructure:"export_sync_enabled"`
}

type Seed struct {
	Rows       int   `mapstructure:"seed_rows"`
	RandomSeed int64 `mapstructure:"seed_random_seed"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MIGRATE", false)

	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_TIMEOUT_SECONDS", 60)

	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("DASHBOARD_TOP_CLIENTS_LIMIT", 10)
	viper.SetDefault("DASHBOARD_LATEST_PAYMENTS_LIMIT", 10)
	viper.SetDefault("DASHBOARD_RAW_PREVIEW_LIMIT", 100)

	// Formato brasileiro: R$ 1.234,56
	viper.SetDefault("CURRENCY_SYMBOL", "R$")
	viper.SetDefault("CURRENCY_THOUSANDS_SEPARATOR", ".")
	viper.SetDefault("CURRENCY_DECIMAL_SEPARATOR", ",")
	viper.SetDefault("CURRENCY_PRECISION", 2)

	viper.SetDefault("EXPORT_TABLE", "contratos")
	viper.SetDefault("EXPORT_OUTPUT_PATH", "dados_tratados.xlsx")
	viper.SetDefault("EXPORT_SHEET_NAME", "Dados Tratados")
	viper.SetDefault("EXPORT_DIR", "exports")

	viper.SetDefault("EXPORT_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("EXPORT_SYNC_ENABLED", false)

	viper.SetDefault("SEED_ROWS", 50)
	viper.SetDefault("SEED_RANDOM_SEED", 0) // 0 = semente baseada no relógio

	viper.SetDefault("SECRETS_FILE", ".secrets.toml")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	secrets, err := LoadSecrets(config.SecretsFile)
	if err != nil {
		return nil, err
	}
	config.applySecrets(secrets)

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a string de conexão conforme o driver configurado
func BuildDSN(db Database) string {
	switch db.Driver {
	case "sqlite":
		return db.URL
	case "firebirdsql":
		// user:password@host:port/caminho/do/banco.fdb
		return fmt.Sprintf("%s:%s@%s", db.User, db.Password, db.URL)
	default:
		return fmt.Sprintf("postgres://%s:%s@%s", db.User, db.Password, db.URL)
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
