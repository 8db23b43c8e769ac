package router

import (
	"github.com/rs/zerolog"
)

// echoLogger routes echo's internal log output (e.g. startup messages) through zerolog.
type echoLogger struct {
	level zerolog.Level
	log   zerolog.Logger
}

func (l *echoLogger) Write(p []byte) (n int, err error) {
	l.log.WithLevel(l.level).Msg(string(p))
	return len(p), nil
}
