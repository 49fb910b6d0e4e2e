package logger

import (
	"fmt"
	"log"
)

type Logger struct {
	l     *log.Logger
	debug bool
}

func New(l *log.Logger) *Logger {
	return &Logger{l: l, debug: false}
}

func NewWithDebug(l *log.Logger) *Logger {
	return &Logger{l: l, debug: true}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Error]: %s\n", msg)
}

func (l *Logger) LogWarnf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Warn]: %s\n", msg)
}

func (l *Logger) LogInfo(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Info]: %s\n", msg)
}

func (l *Logger) LogDebugf(format string, v ...any) {
	if !l.debug {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Debug]: %s\n", msg)
}
