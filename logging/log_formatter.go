package logging

import (
	"fmt"
	"path/filepath"
	"strings"
)

type LogFormatterContainer struct {
	formatters map[string]func(logData *LogData) string
}

func NewLogFormatterRepository() *LogFormatterContainer {
	repo := &LogFormatterContainer{
		formatters: make(map[string]func(logData *LogData) string),
	}
	repo.AddFormatter("Default", DefaultLogFormatter)
	repo.AddFormatter("Color", ColorLogFormatter)
	return repo
}

func (ss *LogFormatterContainer) AddFormatter(name string, formatter func(logData *LogData) string) {
	ss.formatters[name] = formatter
}

func (ss *LogFormatterContainer) GetFormatter(name string) func(logData *LogData) string {
	return ss.formatters[name]
}

func DefaultLogFormatter(logData *LogData) string {
	sb := strings.Builder{}
	writeCommonPrefix(&sb, logData, false)
	sb.WriteString(" " + logData.Message())
	writeAttrs(&sb, logData.Custom)
	return sb.String()
}

func ColorLogFormatter(logData *LogData) string {
	sb := strings.Builder{}
	writeCommonPrefix(&sb, logData, true)
	sb.WriteString(" " + logData.Message())
	writeAttrs(&sb, logData.Custom)
	sb.WriteString("\x1b[0m")
	return sb.String()
}

func writeCommonPrefix(sb *strings.Builder, logData *LogData, color bool) {
	now := logData.Time
	year, mon, day := now.Date()
	hour, m, sec := now.Clock()
	sb.WriteString(fmt.Sprintf(
		"%04d/%02d/%02d %02d:%02d:%02d.%02d",
		year, mon, day,
		hour, m, sec,
		now.Nanosecond()/1000/1000/10,
	))

	info := l2info[clampLevel(logData.Level)]
	if color {
		sb.WriteString(info.color)
	}
	sb.WriteString(fmt.Sprintf(" %7s", info.str))

	name := logData.Name
	if len(name) == 0 {
		name = "System"
	} else if len(name) > 16 {
		name = name[:14] + ".."
	}
	sb.WriteString(fmt.Sprintf(" %16s", name))

	if len(logData.File) != 0 {
		sb.WriteString(fmt.Sprintf(" %s(%d)", filepath.Base(logData.File), logData.Line))
	}
}

func writeAttrs(sb *strings.Builder, attrs []Attr) {
	for _, attr := range attrs {
		sb.WriteString(fmt.Sprintf(" %s=%v", attr.Key, attr.Value))
	}
}

func clampLevel(level Level) Level {
	if level < NONE || level > FATAL {
		return INFO
	}
	return level
}

type levelInfo struct {
	str   string
	color string
}

var l2info = [...]levelInfo{
	NONE:    {"NONE", "\x1b[1;37m"},
	TRACE:   {"TRACE", "\x1b[1;34m"},
	DEBUG:   {"DEBUG", "\x1b[1;36m"},
	INFO:    {"INFO", "\x1b[1;37m"},
	SUCCESS: {"SUCCESS", "\x1b[1;32m"},
	WARN:    {"WARN", "\x1b[1;33m"},
	ERROR:   {"ERROR", "\x1b[1;31m"},
	FATAL:   {"FATAL", "\x1b[1;41m"},
}
