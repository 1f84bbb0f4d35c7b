// Package config loads engine settings from the environment and an optional
// HCL shop policy file
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/aggregation"
	"github.com/FixedOPS-AI/fixedops-ai-demo/pkg/policy"
)

// Defaults applied when neither the environment nor the shop file sets a
// value.
const (
	DefaultLaborRate = 160.0
	DefaultFeePct    = 5.0
	DefaultMake      = "HONDA"
)

const (
	FeeModePercent = "percent"
	FeeModeFlat    = "flat"
)

type Config struct {
	Port        string
	LogLevel    string
	DataDir     string
	CatalogDSN  string
	AuditDir    string
	CORSOrigins []string

	DefaultMake     string
	LaborRate       float64
	FeeMode         string
	FeeValue        float64 // percent points or flat dollars, per FeeMode
	TaxPct          float64 // percent points
	ApprovalCeiling float64

	ShopPolicyFile string
}

// Load builds the configuration from environment variables, then overlays
// the shop policy file when SHOP_POLICY_FILE points at one. Invalid numbers
// are logged and replaced with safe defaults rather than failing the run.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DataDir:     getEnv("DATA_DIR", "data"),
		CatalogDSN:  os.Getenv("CATALOG_DSN"),
		AuditDir:    getEnv("AUDIT_DIR", "audit"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DefaultMake:     strings.ToUpper(getEnv("DEFAULT_MAKE", DefaultMake)),
		LaborRate:       getEnvFloat("LABOR_RATE", DefaultLaborRate),
		FeeMode:         strings.ToLower(getEnv("SHOP_FEE_MODE", FeeModePercent)),
		FeeValue:        getEnvFloat("SHOP_FEE_VALUE", DefaultFeePct),
		TaxPct:          getEnvFloat("TAX_PCT", 0.0),
		ApprovalCeiling: getEnvFloat("APPROVAL_CEILING", policy.DefaultMaxAutoApproval),

		ShopPolicyFile: os.Getenv("SHOP_POLICY_FILE"),
	}

	if cfg.ShopPolicyFile != "" {
		if err := cfg.applyShopFile(cfg.ShopPolicyFile); err != nil {
			return nil, fmt.Errorf("shop policy file %s: %w", cfg.ShopPolicyFile, err)
		}
	}

	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps nonsense values back to defaults so a bad environment
// cannot produce negative money.
func (c *Config) sanitize() {
	if c.LaborRate <= 0 {
		log.WithField("labor_rate", c.LaborRate).Warn("Invalid labor rate, using default")
		c.LaborRate = DefaultLaborRate
	}
	if c.FeeMode != FeeModePercent && c.FeeMode != FeeModeFlat {
		log.WithField("fee_mode", c.FeeMode).Warn("Unknown fee mode, using percent")
		c.FeeMode = FeeModePercent
		c.FeeValue = DefaultFeePct
	}
	if c.FeeValue < 0 {
		log.WithField("fee_value", c.FeeValue).Warn("Negative fee value, using 0")
		c.FeeValue = 0
	}
	if c.TaxPct < 0 {
		log.WithField("tax_pct", c.TaxPct).Warn("Negative tax percent, using 0")
		c.TaxPct = 0
	}
	if c.ApprovalCeiling <= 0 {
		c.ApprovalCeiling = policy.DefaultMaxAutoApproval
	}
	if c.DefaultMake == "" {
		c.DefaultMake = DefaultMake
	}
}

// FeePolicy converts the configured fee settings into the totaler's policy.
// Percent values are entered as points (5.0 means 5%) and converted to a
// fraction here.
func (c *Config) FeePolicy() aggregation.FeePolicy {
	if c.FeeMode == FeeModeFlat {
		return aggregation.FeePolicy{Mode: aggregation.FeeFlat, Value: c.FeeValue}
	}
	return aggregation.FeePolicy{Mode: aggregation.FeePercent, Value: c.FeeValue / 100.0}
}

// TaxRate returns the sales tax as a fraction.
func (c *Config) TaxRate() float64 {
	return c.TaxPct / 100.0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": raw}).Warn("Not a number, using default")
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
