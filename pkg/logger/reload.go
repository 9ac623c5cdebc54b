package logger

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

type Reloader interface {
	Reload() error
}

// HandleReload reopens the log file each time a signal arrives on c, until c is closed.
func HandleReload(c <-chan os.Signal, ws Reloader, logger *zap.Logger) {
	for range c {
		logger.Info("receive logrotate SIGHUP, reloading log file")
		if e := ws.Reload(); e != nil {
			logger.Error("failed to reload log file", zap.Error(e))
		} else {
			logger.Info("successfully reloaded log file")
		}
	}
}

// ReloadOnSIGHUP starts HandleReload for SIGHUP and returns a function that stops it.
func ReloadOnSIGHUP(ws Reloader, logger *zap.Logger) func() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP)
	go HandleReload(c, ws, logger)
	return func() {
		signal.Stop(c)
		close(c)
	}
}
