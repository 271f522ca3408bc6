package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"settlement/internal/adapters/out/redis"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/core/domain/model/withdrawal"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"settlement"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	DBMigrate  bool   `env:"DB_MIGRATE"  envDefault:"true"`

	JWTSecret string `env:"JWT_SECRET,required"`

	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"   envDefault:"settlement.events"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	CommissionRate        string `env:"COMMISSION_RATE"          envDefault:"0.2"`
	WithdrawalFeeRate     string `env:"WITHDRAWAL_FEE_RATE"      envDefault:"0.2"`
	LoadingFee            int64  `env:"LOADING_FEE"              envDefault:"50000"`
	InsuranceFeeMin       int64  `env:"INSURANCE_FEE_MIN"        envDefault:"100000"`
	InsuranceFeeMax       int64  `env:"INSURANCE_FEE_MAX"        envDefault:"200000"`
	CancelReasonMinLength int    `env:"CANCEL_REASON_MIN_LENGTH" envDefault:"10"`

	StatsJobSchedule string `env:"STATS_JOB_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// LoadConfig reads the environment after loading envFile, when it exists, into it.
// Variables already present in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// PostgresDSN is the key/value connection string used by gorm.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// PostgresURL is the URL form golang-migrate expects.
func (c Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) PricingConfig() (pricing.Config, error) {
	cfg := pricing.DefaultConfig()
	cfg.LoadingFee = kernel.Money(c.LoadingFee)
	cfg.InsuranceFeeMin = kernel.Money(c.InsuranceFeeMin)
	cfg.InsuranceFeeMax = kernel.Money(c.InsuranceFeeMax)
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, err
	}
	return cfg, nil
}

func (c Config) Commission() (kernel.Rate, error) {
	return kernel.RateFromString(c.CommissionRate)
}

func (c Config) FeePolicy() (withdrawal.FeePolicy, error) {
	rate, err := kernel.RateFromString(c.WithdrawalFeeRate)
	if err != nil {
		return withdrawal.FeePolicy{}, err
	}
	return withdrawal.NewFeePolicy(rate), nil
}

func (c Config) RedisOptions() redis.Options {
	return redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
