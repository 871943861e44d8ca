package main

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/koscakluka/aeris/cmd/aeris"

var logger = otelslog.NewLogger(scopeName)
