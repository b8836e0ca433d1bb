package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"rwalend/pkg/id"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Platform identities (32-char lowercase hex).
	AdminID      string
	TreasuryID   string
	FeeRecipient string

	// Defaults seeded into the singleton settings row on first boot;
	// admin endpoints own them afterwards.
	PlatformFeeBps     int64
	GracePeriodSeconds int64
	ValueMediums       []string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt64(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "rwalend"),
		MySQLUser: getenv("MYSQL_USER", "rwalend"),
		MySQLPass: getenv("MYSQL_PASS", "rwalend"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		AdminID:      getenv("PLATFORM_ADMIN_ID", ""),
		TreasuryID:   getenv("PLATFORM_TREASURY_ID", ""),
		FeeRecipient: getenv("PLATFORM_FEE_RECIPIENT", ""),

		PlatformFeeBps:     getenvInt64("PLATFORM_FEE_BPS", 100),
		GracePeriodSeconds: getenvInt64("LIQUIDATION_GRACE_SECONDS", 7*24*3600),
		ValueMediums:       []string{getenv("DEFAULT_VALUE_MEDIUM", "USDC")},
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	for k, v := range map[string]string{
		"PLATFORM_ADMIN_ID":      c.AdminID,
		"PLATFORM_TREASURY_ID":   c.TreasuryID,
		"PLATFORM_FEE_RECIPIENT": c.FeeRecipient,
	} {
		if !id.IsID32(v) {
			return fmt.Errorf("%s must be 32-char lowercase hex", k)
		}
	}
	if c.PlatformFeeBps < 0 || c.PlatformFeeBps > 1000 {
		return errors.New("PLATFORM_FEE_BPS must be within 0..1000")
	}
	if c.GracePeriodSeconds < 0 {
		return errors.New("LIQUIDATION_GRACE_SECONDS must not be negative")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
