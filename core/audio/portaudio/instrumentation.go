package portaudio

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/koscakluka/aeris/core/audio/portaudio"

var logger = otelslog.NewLogger(scopeName)
