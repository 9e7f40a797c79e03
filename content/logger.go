package content

import (
	"github.com/labstack/gommon/log"
)

// Logger is the subset of echo.Logger (and gommon's *log.Logger) the
// repository writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NewLogger returns a gommon logger prefixed with "content".
func NewLogger() *log.Logger {
	l := log.New("content")
	l.SetLevel(log.INFO)
	return l
}
