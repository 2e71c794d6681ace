package slog_test

import (
	"sync"
	"testing"

	"github.com/mogud/lumen/logging"
	"github.com/mogud/lumen/logging/slog"
	"github.com/stretchr/testify/assert"
)

type captureHandler struct {
	lock    sync.Mutex
	records []*logging.LogData
}

func (ss *captureHandler) Log(data *logging.LogData) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	clone := *data
	ss.records = append(ss.records, &clone)
}

func (ss *captureHandler) Records() []*logging.LogData {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return append([]*logging.LogData(nil), ss.records...)
}

func TestGlobalSinkManagement(t *testing.T) {
	assert.NotNil(t, slog.DefaultConsole())

	// 按 id 移除默认 sink 后 DefaultConsole 随之失效
	assert.True(t, slog.RemoveHandler(slog.DefaultSinkID()))
	assert.Nil(t, slog.DefaultConsole())
	assert.Equal(t, -1, slog.DefaultSinkID())

	slog.Remove()
	assert.Nil(t, slog.DefaultConsole())

	capture := &captureHandler{}
	id := slog.AddHandler(capture)

	slog.Infof("routed %d", 1)
	slog.Successf("done")

	records := capture.Records()
	assert.Equal(t, 2, len(records))
	assert.Equal(t, logging.INFO, records[0].Level)
	assert.Equal(t, "routed 1", records[0].Message())
	assert.Equal(t, logging.SUCCESS, records[1].Level)

	// 调用点应指向本测试文件
	assert.Contains(t, records[0].File, "log_test.go")
	assert.Equal(t, "TestGlobalSinkManagement", records[0].Func)

	assert.True(t, slog.RemoveHandler(id))
	slog.Errorf("dropped")
	assert.Equal(t, 2, len(capture.Records()))
}

func TestGlobalWithAndCatch(t *testing.T) {
	slog.Remove()
	capture := &captureHandler{}
	slog.AddHandler(capture)

	bound := slog.With(logging.String("request_id", "9f2c"))
	bound.Infof("bound")

	slog.Catch(func() {
		panic("boom")
	})

	records := capture.Records()
	assert.Equal(t, 2, len(records))
	assert.Equal(t, []logging.Attr{logging.String("request_id", "9f2c")}, records[0].Custom)
	assert.Contains(t, records[0].File, "log_test.go")

	assert.Equal(t, logging.ERROR, records[1].Level)
	assert.Contains(t, records[1].Message(), "boom")
}

func TestWrapGuards(t *testing.T) {
	slog.Remove()
	capture := &captureHandler{}
	slog.AddHandler(capture)

	guarded := slog.Wrap(func() {
		panic("kept alive")
	})
	assert.NotPanics(t, func() { guarded() })
	assert.Equal(t, 1, len(capture.Records()))
}
