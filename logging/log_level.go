package logging

import (
	"fmt"
	"strings"
)

type Level int

const (
	NONE Level = iota
	TRACE
	DEBUG
	INFO
	SUCCESS
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{
	NONE:    "NONE",
	TRACE:   "TRACE",
	DEBUG:   "DEBUG",
	INFO:    "INFO",
	SUCCESS: "SUCCESS",
	WARN:    "WARN",
	ERROR:   "ERROR",
	FATAL:   "FATAL",
}

func (ss Level) String() string {
	if ss < NONE || ss > FATAL {
		return fmt.Sprintf("LEVEL(%d)", int(ss))
	}
	return levelNames[ss]
}

// ParseLevel 解析等级名，兼容 WARNING/CRITICAL 等别名
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE":
		return NONE, nil
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "INFORMATION":
		return INFO, nil
	case "SUCCESS":
		return SUCCESS, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL", "CRITICAL":
		return FATAL, nil
	}
	return NONE, fmt.Errorf("unknown log level(%v)", name)
}
