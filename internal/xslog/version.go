package xslog

import (
	"log/slog"

	"github.com/garrettladley/lumen/internal/version"
)

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}
