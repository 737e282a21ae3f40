package handler

import "github.com/junipr-dev/dealscout/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip
