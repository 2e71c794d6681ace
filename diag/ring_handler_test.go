package diag_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mogud/lumen/diag"
	"github.com/mogud/lumen/logging"
	"github.com/mogud/lumen/logging/handler/console"
	"github.com/stretchr/testify/assert"
)

// 控制台 sink 须可被诊断接口调级
var _ diag.ILevelTarget = (*console.Handler)(nil)

func newData(level logging.Level, msg string) *logging.LogData {
	return &logging.LogData{
		Time:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Name:    "App",
		Level:   level,
		Message: func() string { return msg },
	}
}

func TestRingHandlerKeepsRecent(t *testing.T) {
	ring := diag.NewRingHandler(3)

	assert.Empty(t, ring.Recent())

	ring.Log(newData(logging.INFO, "a"))
	ring.Log(newData(logging.WARN, "b"))

	records := ring.Recent()
	assert.Equal(t, 2, len(records))
	assert.Equal(t, "a", records[0].Message)
	assert.Equal(t, "INFO", records[0].Level)
	assert.Equal(t, "b", records[1].Message)

	for i := 0; i < 4; i++ {
		ring.Log(newData(logging.INFO, fmt.Sprintf("m%d", i)))
	}

	records = ring.Recent()
	assert.Equal(t, 3, len(records))
	assert.Equal(t, "m1", records[0].Message)
	assert.Equal(t, "m3", records[2].Message)
}

func TestRingHandlerDefaultSize(t *testing.T) {
	ring := diag.NewRingHandler(0)
	ring.Log(newData(logging.INFO, "x"))
	assert.Equal(t, 1, len(ring.Recent()))
}
