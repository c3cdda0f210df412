package xregistry

import (
	"io"

	"github.com/omeyang/xoui/pkg/observability/xlog"
)

func discardLogger() xlog.Logger {
	logger, _, err := xlog.New().SetOutput(io.Discard).Build()
	if err != nil {
		panic(err)
	}
	return logger
}
