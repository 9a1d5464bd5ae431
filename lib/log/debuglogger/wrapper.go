package debuglogger

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

type loggerWrapper struct {
	log.Logger
}

func (l *loggerWrapper) Debug(level uint8, v ...interface{})                 {}
func (l *loggerWrapper) Debugf(level uint8, format string, v ...interface{}) {}
func (l *loggerWrapper) Debugln(level uint8, v ...interface{})               {}
