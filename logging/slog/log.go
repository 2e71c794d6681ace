package slog

import (
	"sync/atomic"

	"github.com/mogud/lumen/logging"
	"github.com/mogud/lumen/logging/handler/compound"
	"github.com/mogud/lumen/logging/handler/console"
)

// 全局 logger：默认带一个彩色控制台 sink，可整体移除后另行注册。

var globalCompound *compound.Handler
var globalConsole *console.Handler
var globalBase *logging.DefaultLogger
var globalLogger logging.ILogger
var defaultSinkID = -1
var lock int32

func withLock(fn func()) {
	for {
		if !atomic.CompareAndSwapInt32(&lock, 0, 1) {
			continue
		}

		fn()

		atomic.StoreInt32(&lock, 0)
		break
	}
}

func ensureLocked() {
	if globalCompound == nil {
		globalCompound = compound.NewHandler()
		globalConsole = console.NewHandler()
		defaultSinkID = globalCompound.AddHandler(globalConsole)
	}
	if globalBase == nil {
		globalBase = logging.NewDefaultLogger("Global", globalCompound, nil)
		globalLogger = globalBase.WithCallerSkip(1)
	}
}

func getLogger() logging.ILogger {
	var logger logging.ILogger
	withLock(func() {
		ensureLocked()
		logger = globalLogger
	})
	return logger
}

// BindGlobalLogger 替换全局 logger（包级函数仍多一层调用栈）
func BindGlobalLogger(l logging.ILogger) {
	withLock(func() {
		globalLogger = l
	})
}

// AddHandler 注册一个 sink，返回可用于移除的 id
func AddHandler(h logging.ILogHandler) int {
	var id int
	withLock(func() {
		ensureLocked()
		id = globalCompound.AddHandler(h)
	})
	return id
}

// RemoveHandler 移除指定 sink
func RemoveHandler(id int) bool {
	var ok bool
	withLock(func() {
		ensureLocked()
		ok = globalCompound.RemoveHandler(id)
		if ok && id == defaultSinkID {
			defaultSinkID = -1
		}
	})
	return ok
}

// Remove 移除所有 sink，包括默认控制台
func Remove() {
	withLock(func() {
		ensureLocked()
		globalCompound.Clear()
		defaultSinkID = -1
	})
}

// DefaultConsole 返回默认控制台 sink；已被 Remove 时返回 nil
func DefaultConsole() *console.Handler {
	var h *console.Handler
	withLock(func() {
		ensureLocked()
		if defaultSinkID >= 0 {
			h = globalConsole
		}
	})
	return h
}

// DefaultSinkID 返回默认控制台 sink 的 id，已被移除时返回 -1
func DefaultSinkID() int {
	var id int
	withLock(func() {
		ensureLocked()
		id = defaultSinkID
	})
	return id
}

// With 返回携带附加属性的 logger，可直接调用
func With(attrs ...logging.Attr) logging.ILogger {
	var logger logging.ILogger
	withLock(func() {
		ensureLocked()
		logger = globalBase.With(attrs...)
	})
	return logger
}

// Catch 运行 fn 并捕获其中的 panic，记录到全局 logger
func Catch(fn func()) {
	var logger logging.ILogger
	withLock(func() {
		ensureLocked()
		logger = globalBase
	})
	logging.Catch(logger, fn)
}

// Wrap 返回 fn 的受保护版本
func Wrap(fn func()) func() {
	return func() {
		Catch(fn)
	}
}

func Tracef(format string, args ...any) {
	getLogger().Tracef(format, args...)
}

func Debugf(format string, args ...any) {
	getLogger().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	getLogger().Infof(format, args...)
}

func Successf(format string, args ...any) {
	getLogger().Successf(format, args...)
}

func Warnf(format string, args ...any) {
	getLogger().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	getLogger().Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	getLogger().Fatalf(format, args...)
}
