package email

import (
	"github.com/smallbiznis/pos/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.email",
	fx.Provide(NewFromConfig),
)

// NewFromConfig returns a no-op provider until an SMTP host is configured.
func NewFromConfig(cfg config.Config) Provider {
	if cfg.LowStock.SMTPHost == "" {
		return &NoOpProvider{}
	}
	return NewSMTP(Config{
		Host:     cfg.LowStock.SMTPHost,
		Port:     cfg.LowStock.SMTPPort,
		Username: cfg.LowStock.SMTPUsername,
		Password: cfg.LowStock.SMTPPassword,
		From:     cfg.LowStock.SMTPFrom,
	})
}
