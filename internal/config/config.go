package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/growth"
)

const (
	defaultAPIToken      = "dev-token"
	defaultGRPCPort      = ":8080"
	defaultHorizonMonths = 12
)

// Config holds the server configuration
type Config struct {
	GRPCPort             string
	APIToken             string
	DBConnStr            string
	DefaultHorizonMonths int
	RateTiersFile        string
	RateTiers            []domain.RateTier
}

// rateTierFile mirrors the YAML rate schedule file
//
//	rate_tiers:
//	  - upper_bound: "100000"
//	    annual_rate: "0.02"
//	  - annual_rate: "0.04"
type rateTierFile struct {
	RateTiers []struct {
		UpperBound string `yaml:"upper_bound"`
		AnnualRate string `yaml:"annual_rate"`
	} `yaml:"rate_tiers"`
}

// DefaultRateTiers returns the schedule used when no rate tier file is configured
func DefaultRateTiers() []domain.RateTier {
	return []domain.RateTier{
		{UpperBound: decimal.NewNullDecimal(decimal.NewFromInt(100000)), AnnualRate: decimal.RequireFromString("0.02")},
		{UpperBound: decimal.NewNullDecimal(decimal.NewFromInt(1000000)), AnnualRate: decimal.RequireFromString("0.03")},
		{AnnualRate: decimal.RequireFromString("0.04")},
	}
}

// Load reads the configuration from the environment (and a .env file if present),
// then loads the rate tier schedule
func Load() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		GRPCPort:             getEnv("GRPC_PORT", defaultGRPCPort),
		APIToken:             getEnv("API_TOKEN", defaultAPIToken),
		DBConnStr:            os.Getenv("DB_CONN_STR"),
		DefaultHorizonMonths: defaultHorizonMonths,
		RateTiersFile:        os.Getenv("RATE_TIERS_FILE"),
	}

	if cfg.DBConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "wealthflow"),
		)
	}

	if v := os.Getenv("DEFAULT_HORIZON_MONTHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, domain.NewConfigurationError("DEFAULT_HORIZON_MONTHS", "must be an integer")
		}
		cfg.DefaultHorizonMonths = n
	}

	if cfg.RateTiersFile != "" {
		tiers, err := LoadRateTiers(cfg.RateTiersFile)
		if err != nil {
			return nil, err
		}
		cfg.RateTiers = tiers
	} else {
		cfg.RateTiers = DefaultRateTiers()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	var problems []string

	if !strings.HasPrefix(c.GRPCPort, ":") {
		problems = append(problems, fmt.Sprintf("GRPC_PORT %q must look like :8080", c.GRPCPort))
	} else if port, err := strconv.Atoi(strings.TrimPrefix(c.GRPCPort, ":")); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("GRPC_PORT %q must be between 1 and 65535", c.GRPCPort))
	}

	if strings.TrimSpace(c.APIToken) == "" {
		problems = append(problems, "API_TOKEN cannot be empty")
	}

	if c.DefaultHorizonMonths < 1 || c.DefaultHorizonMonths > domain.MaxHorizonMonths {
		problems = append(problems, fmt.Sprintf("DEFAULT_HORIZON_MONTHS must be between 1 and %d", domain.MaxHorizonMonths))
	}

	if err := growth.ValidateTiers(c.RateTiers); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return domain.NewConfigurationError("config", strings.Join(problems, "; "))
	}
	return nil
}

// LoadRateTiers reads a YAML rate schedule file
func LoadRateTiers(path string) ([]domain.RateTier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate tiers: %w", err)
	}
	return ParseRateTiers(data)
}

// ParseRateTiers decodes a YAML rate schedule; a tier without upper_bound is unbounded
func ParseRateTiers(data []byte) ([]domain.RateTier, error) {
	var file rateTierFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rate tiers: %w", err)
	}

	tiers := make([]domain.RateTier, 0, len(file.RateTiers))
	for i, raw := range file.RateTiers {
		rate, err := decimal.NewFromString(strings.TrimSpace(raw.AnnualRate))
		if err != nil {
			return nil, domain.NewConfigurationError(fmt.Sprintf("rate_tiers[%d].annual_rate", i), "is not a decimal")
		}

		tier := domain.RateTier{AnnualRate: rate}
		if bound := strings.TrimSpace(raw.UpperBound); bound != "" {
			upper, err := decimal.NewFromString(bound)
			if err != nil {
				return nil, domain.NewConfigurationError(fmt.Sprintf("rate_tiers[%d].upper_bound", i), "is not a decimal")
			}
			tier.UpperBound = decimal.NewNullDecimal(upper)
		}
		tiers = append(tiers, tier)
	}

	if err := growth.ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// StaticRateSchedule serves a fixed, already validated rate schedule
type StaticRateSchedule struct {
	tiers []domain.RateTier
}

// NewStaticRateSchedule creates a rate schedule repository over the given tiers
func NewStaticRateSchedule(tiers []domain.RateTier) domain.RateScheduleRepository {
	copied := make([]domain.RateTier, len(tiers))
	copy(copied, tiers)
	return &StaticRateSchedule{tiers: copied}
}

// GetRateTiers returns a copy of the schedule
func (s *StaticRateSchedule) GetRateTiers(_ context.Context) ([]domain.RateTier, error) {
	tiers := make([]domain.RateTier, len(s.tiers))
	copy(tiers, s.tiers)
	return tiers, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
