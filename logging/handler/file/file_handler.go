package file

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mogud/lumen/logging"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	Path             string        `koanf:"Path"`             // 文件名模板，如 log_folder/{time:YYYY-MM-DD}.log
	Format           string        `koanf:"Format"`           // 行模板，空则用 Default 格式器
	Level            logging.Level `koanf:"Level"`            // 本 sink 的最低等级
	MaxLogChanLength int           `koanf:"MaxLogChanLength"` // 写入队列长度，满则丢弃
	Compress         bool          `koanf:"Compress"`         // 换文件时 gzip 旧文件
}

type Handler struct {
	lock sync.Mutex

	option          *Option
	pathTemplate    func(t time.Time) string
	formatter       func(logData *logging.LogData) string
	fileName        string
	lastRefreshTime time.Time
	logChan         chan *writerElement
	fileWriter      *writer
	closed          bool
}

func NewHandler() *Handler {
	handler := &Handler{}
	_ = handler.applyOption(&Option{})
	return handler
}

func (ss *Handler) Construct(opt *Option) error {
	if opt == nil {
		return nil
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.applyOption(opt)
}

// applyOption 模板全部编译成功后才替换当前配置
func (ss *Handler) applyOption(opt *Option) error {
	if len(opt.Path) == 0 {
		opt.Path = "logs/{time:YYYY-MM-DD}.log"
	}
	if opt.Level == logging.NONE {
		opt.Level = logging.INFO
	}
	if opt.MaxLogChanLength <= 0 {
		opt.MaxLogChanLength = 102400
	}

	pathTemplate, err := logging.CompilePathTemplate(opt.Path)
	if err != nil {
		return fmt.Errorf("failed to compile log path template(%v): %w", opt.Path, err)
	}

	formatter := logging.DefaultLogFormatter
	if len(opt.Format) != 0 {
		// 文件输出不着色
		formatter, err = logging.CompileFormatter(opt.Format, false)
		if err != nil {
			return fmt.Errorf("failed to compile log format(%v): %w", opt.Format, err)
		}
	}

	ss.option = opt
	ss.pathTemplate = pathTemplate
	ss.formatter = formatter
	ss.fileName = ""
	ss.lastRefreshTime = time.Time{}

	if ss.logChan == nil || opt.MaxLogChanLength != cap(ss.logChan) {
		if ss.logChan != nil {
			close(ss.logChan)
		}
		ss.logChan = make(chan *writerElement, opt.MaxLogChanLength)
		ss.fileWriter = newWriter(ss.logChan)
	}
	return nil
}

func (ss *Handler) Log(data *logging.LogData) {
	if data.Level == logging.NONE {
		return
	}

	ss.lock.Lock()
	if ss.closed {
		ss.lock.Unlock()
		return
	}
	curOption := ss.option
	formatter := ss.formatter
	logCh := ss.logChan
	ss.lock.Unlock()

	if data.Level < curOption.Level {
		return
	}

	message := formatter(data)
	fileName, compressPrev := ss.refreshFileName(data.Time)

	unit := &writerElement{
		File:         fileName,
		Message:      message,
		CompressPrev: compressPrev,
	}
	select {
	case logCh <- unit:
	default:
		_, _ = fmt.Fprintln(os.Stderr, "file log channel full")
	}
}

// refreshFileName 渲染文件名模板，文件名变化时报告是否需要压缩旧文件。
// 渲染结果按秒粒度缓存。
func (ss *Handler) refreshFileName(now time.Time) (string, bool) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	if len(ss.fileName) != 0 && now.Sub(ss.lastRefreshTime) < time.Second {
		return ss.fileName, false
	}

	ss.lastRefreshTime = now
	newName := ss.pathTemplate(now)
	if newName == ss.fileName {
		return ss.fileName, false
	}

	changed := len(ss.fileName) != 0
	ss.fileName = newName
	return newName, changed && ss.option.Compress
}

// Close 关闭写入队列并等待落盘，超时放弃
func (ss *Handler) Close() bool {
	ss.lock.Lock()
	if ss.closed {
		ss.lock.Unlock()
		return true
	}
	ss.closed = true
	logCh := ss.logChan
	fileWriter := ss.fileWriter
	ss.lock.Unlock()

	close(logCh)
	return fileWriter.wg.WaitTimeout(5 * time.Second)
}
