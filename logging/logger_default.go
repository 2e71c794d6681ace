package logging

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

var _ ILogger = (*DefaultLogger)(nil)

type DefaultLogger struct {
	path           string
	handler        ILogHandler
	logDataBuilder func(data *LogData)
	attrs          []Attr
	callerSkip     int
}

func NewDefaultLogger(path string, handler ILogHandler, logDataBuilder func(data *LogData)) *DefaultLogger {
	return &DefaultLogger{
		path:           path,
		handler:        handler,
		logDataBuilder: logDataBuilder,
	}
}

// WithCallerSkip 返回增加调用栈跳过层数的新 logger，供外层封装使用
func (ss *DefaultLogger) WithCallerSkip(skip int) *DefaultLogger {
	clone := *ss
	clone.callerSkip = ss.callerSkip + skip
	return &clone
}

func (ss *DefaultLogger) With(attrs ...Attr) ILogger {
	if len(attrs) == 0 {
		return ss
	}

	clone := *ss
	merged := make([]Attr, 0, len(ss.attrs)+len(attrs))
	merged = append(merged, ss.attrs...)
	merged = append(merged, attrs...)
	clone.attrs = merged
	return &clone
}

func (ss *DefaultLogger) log(level Level, format string, args ...any) {
	logData := &LogData{
		Time:  time.Now(),
		Path:  ss.path,
		Level: level,
		Message: func() string {
			return fmt.Sprintf(format, args...)
		},
	}

	if len(ss.attrs) > 0 {
		logData.Custom = append(logData.Custom, ss.attrs...)
	}

	ss.captureCaller(logData)

	if ss.logDataBuilder != nil {
		ss.logDataBuilder(logData)
	}
	ss.handler.Log(logData)
}

func (ss *DefaultLogger) captureCaller(data *LogData) {
	pc, file, line, ok := runtime.Caller(3 + ss.callerSkip)
	if !ok {
		return
	}

	data.File = file
	data.Line = line

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return
	}

	full := fn.Name()
	if idx := strings.LastIndexByte(full, '/'); idx >= 0 {
		full = full[idx+1:]
	}
	if idx := strings.IndexByte(full, '.'); idx >= 0 {
		if len(data.Name) == 0 {
			data.Name = full[:idx]
		}
		data.Func = full[idx+1:]
	} else {
		data.Func = full
	}
}

func (ss *DefaultLogger) Tracef(format string, args ...any) {
	ss.log(TRACE, format, args...)
}

func (ss *DefaultLogger) Debugf(format string, args ...any) {
	ss.log(DEBUG, format, args...)
}

func (ss *DefaultLogger) Infof(format string, args ...any) {
	ss.log(INFO, format, args...)
}

func (ss *DefaultLogger) Successf(format string, args ...any) {
	ss.log(SUCCESS, format, args...)
}

func (ss *DefaultLogger) Warnf(format string, args ...any) {
	ss.log(WARN, format, args...)
}

func (ss *DefaultLogger) Errorf(format string, args ...any) {
	ss.log(ERROR, format, args...)
}

// Fatalf 仅记录，不终止进程
func (ss *DefaultLogger) Fatalf(format string, args ...any) {
	ss.log(FATAL, format, args...)
}
