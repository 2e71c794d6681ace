package logging

import (
	"fmt"

	"github.com/mogud/lumen/debug"
)

// Catch 运行 fn，若其内部 panic 则记录后吞掉，不再向外传播
func Catch(logger ILogger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("recovered from panic: %v\n%s", r, debug.StackInfo())
		}
	}()

	fn()
}

// CatchE 同 Catch，但将 panic 转为 error 返回给调用方
func CatchE(logger ILogger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("recovered from panic: %v\n%s", r, debug.StackInfo())
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()

	return fn()
}

// Wrap 返回 fn 的受保护版本
func Wrap(logger ILogger, fn func()) func() {
	return func() {
		Catch(logger, fn)
	}
}
