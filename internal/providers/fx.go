package providers

import (
	"github.com/smallbiznis/pos/internal/providers/email"
	"github.com/smallbiznis/pos/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
