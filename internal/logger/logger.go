package logger

import (
	"go.uber.org/zap"
)

// Init builds the global zap logger. Anything other than "production"
// gets the human-readable development config.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)

	return nil
}
