// Package config loads service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/streetperformersmap/tips-api/pkg/notify"
	"github.com/streetperformersmap/tips-api/pkg/payments"
)

type Config struct {
	App       AppConfig
	AWS       AWSConfig
	Stripe    StripeConfig
	Tips      TipsConfig
	Notify    NotifyConfig
	Reconcile ReconcileConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type AWSConfig struct {
	// EndpointURL points the SDK clients at a local stack when set.
	EndpointURL           string
	TransactionsTableName string
	ConnectionsTableName  string
	NotificationsQueueURL string
	WebsocketAPIEndpoint  string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type TipsConfig struct {
	Currency string
	Fees     payments.FeeSchedule
}

type NotifyConfig struct {
	Mode notify.Mode
}

type ReconcileConfig struct {
	PendingAfter time.Duration
}

// DefaultPendingAfter is how long a tip may stay pending before the sweep asks the processor.
const DefaultPendingAfter = 30 * time.Minute

// Requirement selects which keys must be present for a given binary.
type Requirement int

const (
	RequireTransactions Requirement = 1 << iota
	RequireConnections
	RequireStripe
	RequireWebhookSecret
	RequireNotificationsQueue
	RequireWebsocketEndpoint
)

// Load reads configuration after loading an optional .env file and checks the required keys.
func Load(required Requirement) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return load(v, required)
}

func setDefaults(v *viper.Viper) {
	defaults := payments.DefaultFeeSchedule()

	v.SetDefault("APP_NAME", "tips-api")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "")
	v.SetDefault("NOTIFY_MODE", string(notify.ModeNone))
	v.SetDefault("TIP_CURRENCY", "usd")
	v.SetDefault("TIP_MIN_AMOUNT", defaults.MinAmount.String())
	v.SetDefault("TIP_MAX_AMOUNT", defaults.MaxAmount.String())
	v.SetDefault("TIP_FEE_PERCENT", defaults.Percent.String())
	v.SetDefault("TIP_FEE_FIXED", defaults.Fixed.String())
	v.SetDefault("RECONCILE_PENDING_AFTER", DefaultPendingAfter.String())
}

func load(v *viper.Viper, required Requirement) (*Config, error) {
	var problems []string

	fees, err := feeSchedule(v)
	if err != nil {
		problems = append(problems, err.Error())
	}

	pendingAfter, err := time.ParseDuration(v.GetString("RECONCILE_PENDING_AFTER"))
	if err != nil || pendingAfter <= 0 {
		problems = append(problems, fmt.Sprintf("RECONCILE_PENDING_AFTER must be a positive duration, got %q", v.GetString("RECONCILE_PENDING_AFTER")))
	}

	mode := notify.Mode(strings.ToLower(v.GetString("NOTIFY_MODE")))
	switch mode {
	case notify.ModeSQS, notify.ModeLocal, notify.ModeNone:
	default:
		problems = append(problems, fmt.Sprintf("NOTIFY_MODE must be one of sqs, local, none, got %q", mode))
	}

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("HTTP_PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		AWS: AWSConfig{
			EndpointURL:           v.GetString("AWS_ENDPOINT_URL"),
			TransactionsTableName: v.GetString("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
			ConnectionsTableName:  v.GetString("DYNAMODB_CONNECTIONS_TABLE_NAME"),
			NotificationsQueueURL: v.GetString("SQS_NOTIFICATIONS_QUEUE_URL"),
			WebsocketAPIEndpoint:  v.GetString("WEBSOCKET_API_ENDPOINT"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		},
		Tips: TipsConfig{
			Currency: strings.ToLower(v.GetString("TIP_CURRENCY")),
			Fees:     fees,
		},
		Notify: NotifyConfig{
			Mode: mode,
		},
		Reconcile: ReconcileConfig{
			PendingAfter: pendingAfter,
		},
	}

	if mode == notify.ModeSQS {
		required |= RequireNotificationsQueue
	}

	checks := []struct {
		flag  Requirement
		key   string
		value string
	}{
		{RequireTransactions, "DYNAMODB_TRANSACTIONS_TABLE_NAME", cfg.AWS.TransactionsTableName},
		{RequireConnections, "DYNAMODB_CONNECTIONS_TABLE_NAME", cfg.AWS.ConnectionsTableName},
		{RequireStripe, "STRIPE_SECRET_KEY", cfg.Stripe.SecretKey},
		{RequireWebhookSecret, "STRIPE_WEBHOOK_SECRET", cfg.Stripe.WebhookSecret},
		{RequireNotificationsQueue, "SQS_NOTIFICATIONS_QUEUE_URL", cfg.AWS.NotificationsQueueURL},
		{RequireWebsocketEndpoint, "WEBSOCKET_API_ENDPOINT", cfg.AWS.WebsocketAPIEndpoint},
	}
	var missing []string
	for _, c := range checks {
		if required&c.flag != 0 && c.value == "" {
			missing = append(missing, c.key)
		}
	}
	if len(missing) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missing, ", "))
	}

	if len(problems) > 0 {
		return nil, errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return cfg, nil
}

func feeSchedule(v *viper.Viper) (payments.FeeSchedule, error) {
	var fees payments.FeeSchedule
	fields := []struct {
		key  string
		dest *decimal.Decimal
	}{
		{"TIP_FEE_PERCENT", &fees.Percent},
		{"TIP_FEE_FIXED", &fees.Fixed},
		{"TIP_MIN_AMOUNT", &fees.MinAmount},
		{"TIP_MAX_AMOUNT", &fees.MaxAmount},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(v.GetString(f.key))
		if err != nil {
			return payments.FeeSchedule{}, fmt.Errorf("%s is not a decimal: %w", f.key, err)
		}
		*f.dest = d
	}
	if err := fees.Validate(); err != nil {
		return payments.FeeSchedule{}, fmt.Errorf("invalid fee schedule: %w", err)
	}
	return fees, nil
}
