package logging

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	assert "github.com/arl/assertgo"
)

// 模板语法：
//
//	{time:YYYY-MM-DD HH:mm:ss} | <level>{level: <8}</level> | <cyan>{name}</cyan>:{function}:{line} - {message}
//
// token 后跟 ':' 为格式说明，time 为时间布局，其余为对齐说明（[填充]<>^ 宽度）。
// <green>/<cyan>/... 为着色标记，<level> 按记录等级取色，</xxx> 或 </> 闭合。
type templateSegment func(sb *strings.Builder, data *LogData)

var markupColors = map[string]string{
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
	"bold":    "\x1b[1m",
}

const colorReset = "\x1b[0m"

func MustCompileFormatter(tpl string, colorize bool) func(*LogData) string {
	formatter, err := CompileFormatter(tpl, colorize)
	if err != nil {
		panic(fmt.Sprintf("compile log format(%v): %v", tpl, err))
	}
	return formatter
}

func CompileFormatter(tpl string, colorize bool) (func(*LogData) string, error) {
	segs, err := compileSegments(tpl, colorize)
	if err != nil {
		return nil, err
	}

	return func(data *LogData) string {
		sb := &strings.Builder{}
		for _, seg := range segs {
			seg(sb, data)
		}
		return sb.String()
	}, nil
}

// CompilePathTemplate 编译文件名模板，仅允许 {time:...}
func CompilePathTemplate(tpl string) (func(t time.Time) string, error) {
	segs, err := compileSegments(tpl, false)
	if err != nil {
		return nil, err
	}
	if err := checkPathTokens(tpl); err != nil {
		return nil, err
	}

	return func(t time.Time) string {
		sb := &strings.Builder{}
		data := &LogData{Time: t}
		for _, seg := range segs {
			seg(sb, data)
		}
		return sb.String()
	}, nil
}

func checkPathTokens(tpl string) error {
	rest := tpl
	for {
		idx := strings.IndexByte(rest, '{')
		if idx < 0 {
			return nil
		}
		rest = rest[idx+1:]
		if strings.HasPrefix(rest, "{") { // {{ 转义
			rest = rest[1:]
			continue
		}

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return fmt.Errorf("unclosed token in path template")
		}
		token := rest[:end]
		if name, _, _ := strings.Cut(token, ":"); name != "time" {
			return fmt.Errorf("path template only accepts the time token, got {%v}", name)
		}
		rest = rest[end+1:]
	}
}

func compileSegments(tpl string, colorize bool) ([]templateSegment, error) {
	var segs []templateSegment
	var tagStack []string
	literal := &strings.Builder{}

	flushLiteral := func() {
		if literal.Len() == 0 {
			return
		}
		text := literal.String()
		literal.Reset()
		segs = append(segs, func(sb *strings.Builder, _ *LogData) {
			sb.WriteString(text)
		})
	}

	i := 0
	for i < len(tpl) {
		c := tpl[i]
		switch {
		case c == '\\' && i+1 < len(tpl) && (tpl[i+1] == '<' || tpl[i+1] == '>'):
			literal.WriteByte(tpl[i+1])
			i += 2

		case c == '{':
			if i+1 < len(tpl) && tpl[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}

			end := strings.IndexByte(tpl[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed '{' at offset %d", i)
			}

			flushLiteral()
			seg, err := compileToken(tpl[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			i += end + 1

		case c == '}':
			if i+1 < len(tpl) && tpl[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("unmatched '}' at offset %d", i)

		case c == '<':
			end := strings.IndexByte(tpl[i:], '>')
			if end < 0 {
				// 不是标记，按字面输出
				literal.WriteByte(c)
				i++
				continue
			}

			tag := tpl[i+1 : i+end]
			closing := strings.HasPrefix(tag, "/")
			if closing {
				tag = tag[1:]
			}

			if !closing && !isMarkupTag(tag) {
				literal.WriteByte(c)
				i++
				continue
			}

			if closing {
				if len(tagStack) == 0 {
					return nil, fmt.Errorf("closing tag </%v> without opening tag", tag)
				}
				top := tagStack[len(tagStack)-1]
				if len(tag) != 0 && tag != top {
					return nil, fmt.Errorf("closing tag </%v> does not match <%v>", tag, top)
				}
				tagStack = tagStack[:len(tagStack)-1]

				if colorize {
					flushLiteral()
					reapply := make([]string, len(tagStack))
					copy(reapply, tagStack)
					segs = append(segs, func(sb *strings.Builder, data *LogData) {
						sb.WriteString(colorReset)
						for _, t := range reapply {
							sb.WriteString(tagColor(t, data))
						}
					})
				}
			} else {
				tagStack = append(tagStack, tag)

				if colorize {
					flushLiteral()
					tagName := tag
					segs = append(segs, func(sb *strings.Builder, data *LogData) {
						sb.WriteString(tagColor(tagName, data))
					})
				}
			}
			i += end + 1

		default:
			literal.WriteByte(c)
			i++
		}
	}

	if len(tagStack) != 0 {
		return nil, fmt.Errorf("unclosed tag <%v>", tagStack[len(tagStack)-1])
	}

	flushLiteral()
	return segs, nil
}

func isMarkupTag(tag string) bool {
	if tag == "level" {
		return true
	}
	_, ok := markupColors[tag]
	return ok
}

func tagColor(tag string, data *LogData) string {
	if tag == "level" {
		return l2info[clampLevel(data.Level)].color
	}
	return markupColors[tag]
}

func compileToken(token string) (templateSegment, error) {
	name, spec, hasSpec := strings.Cut(token, ":")

	if name == "time" {
		layout := "2006-01-02 15:04:05.000"
		if hasSpec {
			layout = TranslateTimeSpec(spec)
		}
		return func(sb *strings.Builder, data *LogData) {
			sb.WriteString(data.Time.Format(layout))
		}, nil
	}

	var value func(data *LogData) string
	switch name {
	case "level":
		value = func(data *LogData) string { return data.Level.String() }
	case "name":
		value = func(data *LogData) string {
			if len(data.Name) != 0 {
				return data.Name
			}
			return data.Path
		}
	case "function":
		value = func(data *LogData) string { return data.Func }
	case "line":
		value = func(data *LogData) string { return strconv.Itoa(data.Line) }
	case "file":
		value = func(data *LogData) string { return filepath.Base(data.File) }
	case "path":
		value = func(data *LogData) string { return data.Path }
	case "id":
		value = func(data *LogData) string { return data.ID }
	case "node":
		value = func(data *LogData) string {
			if len(data.NodeName) != 0 {
				return data.NodeName
			}
			return strconv.Itoa(data.NodeID)
		}
	case "message":
		value = func(data *LogData) string { return data.Message() }
	case "extra":
		value = func(data *LogData) string {
			sb := strings.Builder{}
			for idx, attr := range data.Custom {
				if idx > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%s=%v", attr.Key, attr.Value))
			}
			return sb.String()
		}
	default:
		return nil, fmt.Errorf("unknown format token {%v}", name)
	}

	if !hasSpec {
		return func(sb *strings.Builder, data *LogData) {
			sb.WriteString(value(data))
		}, nil
	}

	fill, align, width, err := parseAlignSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("token {%v}: %w", name, err)
	}

	return func(sb *strings.Builder, data *LogData) {
		sb.WriteString(pad(value(data), fill, align, width))
	}, nil
}

// parseAlignSpec 解析 "[fill]<>^width" 形式的对齐说明
func parseAlignSpec(spec string) (fill byte, align byte, width int, err error) {
	fill, align = ' ', '<'

	rest := spec
	if len(rest) >= 2 && (rest[1] == '<' || rest[1] == '>' || rest[1] == '^') {
		fill = rest[0]
		align = rest[1]
		rest = rest[2:]
	} else if len(rest) >= 1 && (rest[0] == '<' || rest[0] == '>' || rest[0] == '^') {
		align = rest[0]
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return 0, 0, 0, fmt.Errorf("missing width in align spec %q", spec)
	}

	width, err = strconv.Atoi(rest)
	if err != nil || width < 0 {
		return 0, 0, 0, fmt.Errorf("invalid width in align spec %q", spec)
	}

	assert.True(align == '<' || align == '>' || align == '^')
	return fill, align, width, nil
}

func pad(s string, fill byte, align byte, width int) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}

	switch align {
	case '>':
		return strings.Repeat(string(fill), gap) + s
	case '^':
		left := gap / 2
		return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), gap-left)
	default:
		return s + strings.Repeat(string(fill), gap)
	}
}

var timeSpecTable = []struct {
	from string
	to   string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{".SSS", ".000"},
	{"A", "PM"},
	{"ZZ", "-07:00"},
	{"Z", "Z0700"},
}

// TranslateTimeSpec 将 YYYY-MM-DD 风格的时间说明翻译为 Go 布局
func TranslateTimeSpec(spec string) string {
	sb := strings.Builder{}
	for i := 0; i < len(spec); {
		matched := false
		for _, entry := range timeSpecTable {
			if strings.HasPrefix(spec[i:], entry.from) {
				sb.WriteString(entry.to)
				i += len(entry.from)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(spec[i])
			i++
		}
	}
	return sb.String()
}
