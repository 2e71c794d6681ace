package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mogud/lumen/container"
	"github.com/mogud/lumen/logging"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	Format       string                   `koanf:"Format"`    // 行模板，优先于 Formatter
	Formatter    string                   `koanf:"Formatter"` // 内置格式器名
	NoColor      bool                     `koanf:"NoColor"`
	ErrorLevel   logging.Level            `koanf:"ErrorLevel"`
	Filter       map[string]logging.Level `koanf:"Filter"`
	DefaultLevel logging.Level            `koanf:"DefaultLevel"`
}

type Handler struct {
	lock      sync.Mutex
	option    *Option
	filters   *container.OrderedMap[string, logging.Level]
	formatter func(logData *logging.LogData) string

	stdout io.Writer
	stderr io.Writer
}

func NewHandler() *Handler {
	handler := &Handler{
		option: &Option{
			Formatter:    "Color",
			ErrorLevel:   logging.ERROR,
			DefaultLevel: logging.INFO,
			Filter:       make(map[string]logging.Level),
		},
		filters:   container.NewOrderedMap[string, logging.Level](),
		formatter: logging.ColorLogFormatter,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	return handler
}

func (ss *Handler) Construct(opt *Option, repo *logging.LogFormatterContainer) error {
	if opt == nil {
		return nil
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.option = opt
	return ss.checkOption(repo)
}

func (ss *Handler) checkOption(repo *logging.LogFormatterContainer) error {
	opt := ss.option
	if opt.DefaultLevel == logging.NONE {
		opt.DefaultLevel = logging.INFO
	}
	if opt.ErrorLevel == logging.NONE {
		opt.ErrorLevel = logging.ERROR
	}
	if opt.Filter == nil {
		opt.Filter = make(map[string]logging.Level)
	}

	ss.filters = container.NewOrderedMap[string, logging.Level]()
	for path, level := range opt.Filter {
		ss.filters.Add(path, level)
	}

	switch {
	case len(opt.Format) != 0:
		formatter, err := logging.CompileFormatter(opt.Format, !opt.NoColor)
		if err != nil {
			return fmt.Errorf("failed to compile console format(%v): %w", opt.Format, err)
		}
		ss.formatter = formatter
	case repo != nil && repo.GetFormatter(opt.Formatter) != nil:
		ss.formatter = repo.GetFormatter(opt.Formatter)
	case opt.NoColor:
		ss.formatter = logging.DefaultLogFormatter
	default:
		ss.formatter = logging.ColorLogFormatter
	}
	return nil
}

// SetOutput 重定向输出，供测试与嵌入环境使用
func (ss *Handler) SetOutput(stdout, stderr io.Writer) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	if stdout != nil {
		ss.stdout = stdout
	}
	if stderr != nil {
		ss.stderr = stderr
	}
}

func (ss *Handler) DefaultLevel() logging.Level {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.option.DefaultLevel
}

func (ss *Handler) SetDefaultLevel(level logging.Level) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.option.DefaultLevel = level
}

func (ss *Handler) Log(data *logging.LogData) {
	if data.Level == logging.NONE {
		return
	}

	ss.lock.Lock()
	curOption := ss.option
	filters := ss.filters
	formatter := ss.formatter
	stdout, stderr := ss.stdout, ss.stderr
	ss.lock.Unlock()

	// 键降序扫描，首个命中即最长前缀
	filterLevel := curOption.DefaultLevel
	filters.ScanKVDescIf(func(key string, level logging.Level) bool {
		if len(key) <= len(data.Path) && data.Path[:len(key)] == key {
			filterLevel = level
			return false
		}
		return true
	})

	if data.Level < filterLevel {
		return
	}

	message := formatter(data)

	if data.Level < curOption.ErrorLevel {
		_, _ = fmt.Fprintln(stdout, message)
	} else {
		_, _ = fmt.Fprintln(stderr, message)
	}
}
