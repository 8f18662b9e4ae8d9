package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init replaces zap's global logger. Development and test environments get the
// human readable console encoder, everything else logs JSON.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch environment {
	case "development", "test", "":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to build zap logger -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
