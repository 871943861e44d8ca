package metrics

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/koscakluka/aeris/internal/metrics"

var logger = otelslog.NewLogger(scopeName)
