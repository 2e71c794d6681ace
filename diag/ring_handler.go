package diag

import (
	"sync"

	"github.com/mogud/lumen/logging"
)

var _ logging.ILogHandler = (*RingHandler)(nil)

type Record struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// RingHandler 保留最近 size 条记录，供诊断接口查询
type RingHandler struct {
	lock sync.Mutex
	buf  []Record
	next int
	full bool
}

func NewRingHandler(size int) *RingHandler {
	if size <= 0 {
		size = 256
	}
	return &RingHandler{
		buf: make([]Record, size),
	}
}

func (ss *RingHandler) Log(data *logging.LogData) {
	record := Record{
		Time:    data.Time.Format("2006-01-02 15:04:05.000"),
		Level:   data.Level.String(),
		Name:    data.Name,
		Message: data.Message(),
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.buf[ss.next] = record
	ss.next++
	if ss.next == len(ss.buf) {
		ss.next = 0
		ss.full = true
	}
}

// Recent 返回从旧到新的记录副本
func (ss *RingHandler) Recent() []Record {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	if !ss.full {
		result := make([]Record, ss.next)
		copy(result, ss.buf[:ss.next])
		return result
	}

	result := make([]Record, 0, len(ss.buf))
	result = append(result, ss.buf[ss.next:]...)
	result = append(result, ss.buf[:ss.next]...)
	return result
}
