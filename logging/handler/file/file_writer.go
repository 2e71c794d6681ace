package file

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/klauspost/compress/gzip"
	sync2 "github.com/mogud/lumen/sync"
	"github.com/mogud/lumen/task"
)

type writerElement struct {
	File         string
	Message      string
	CompressPrev bool
}

type writer struct {
	fileName string
	file     *os.File
	wg       *sync2.TimeoutWaitGroup
}

func newWriter(c <-chan *writerElement) *writer {
	w := &writer{wg: sync2.NewTimeoutWaitGroup()}
	w.wg.Add(1)
	task.Execute(func() { w.loop(c) })
	return w
}

func (ss *writer) loop(c <-chan *writerElement) {
	defer ss.wg.Done()

	for {
		unit, ok := <-c
		if !ok {
			break
		}

		if ss.fileName == unit.File {
			_, _ = fmt.Fprintln(ss.file, unit.Message)
			continue
		}

		dir := path.Dir(unit.File)
		_ = os.MkdirAll(dir, 0755)

		f, err := os.OpenFile(unit.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "log to file <%s>: %s\n", unit.File, err.Error())
			continue
		}

		prevName := ss.fileName
		if ss.file != nil {
			_ = ss.file.Close()
		}

		ss.file = f
		ss.fileName = unit.File
		_, _ = fmt.Fprintln(f, unit.Message)

		if unit.CompressPrev && len(prevName) != 0 {
			compressFile(prevName)
		}
	}

	if ss.file != nil {
		_ = ss.file.Close()
		ss.file = nil
	}
}

// compressFile 将写完的日志文件压缩为 .gz 并删除原文件
func compressFile(name string) {
	src, err := os.Open(name)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "compress log <%s>: %s\n", name, err.Error())
		return
	}

	dst, err := os.Create(name + ".gz")
	if err != nil {
		_ = src.Close()
		_, _ = fmt.Fprintf(os.Stderr, "compress log <%s>: %s\n", name, err.Error())
		return
	}

	gw := gzip.NewWriter(dst)
	if _, err = io.Copy(gw, src); err == nil {
		err = gw.Close()
	} else {
		_ = gw.Close()
	}
	if err2 := dst.Close(); err == nil {
		err = err2
	}

	_ = src.Close()

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "compress log <%s>: %s\n", name, err.Error())
		_ = os.Remove(name + ".gz")
		return
	}

	_ = os.Remove(name)
}
