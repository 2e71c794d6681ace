package logging

import (
	"fmt"
	"time"
)

// Attr 为绑定到日志记录上的附加属性
type Attr struct {
	Key   string
	Value any
}

func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

func Any(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

type LogData struct {
	Time     time.Time
	NodeID   int
	NodeName string
	Path     string
	Name     string
	ID       string
	File     string
	Line     int
	Func     string
	Level    Level
	Custom   []Attr
	Message  func() string
}

type ILogHandler interface {
	Log(data *LogData)
}

func NewSimpleLogHandler() ILogHandler {
	return simpleLogHandler{}
}

type simpleLogHandler struct {
}

func (ss simpleLogHandler) Log(data *LogData) {
	fmt.Println(DefaultLogFormatter(data))
}
