package option

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch 监视配置文件变化并自动 Reload。
// 文件不存在时改为监视父目录，等待其被创建。
func Watch(filePath string) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !pathEquals(event.Name, filePath) {
					continue
				}

				if event.Has(fsnotify.Write | fsnotify.Create) {
					// 编辑器可能写一半，稍等再读
					go func() {
						<-time.After(500 * time.Millisecond)
						if err := Reload(); err != nil {
							_, _ = fmt.Fprintf(os.Stderr, "reload option(%v): %v\n", filePath, err)
						}
					}()
				}
			case err, ok := <-watcher.Errors:
				if err != nil {
					_, _ = fmt.Fprintf(os.Stderr, "option file watcher: %v\n", err)
				}
				if !ok {
					return
				}
			}
		}
	}()

	if err = watcher.Add(filePath); err != nil {
		parentDir := path.Dir(filePath)

		if err = os.MkdirAll(parentDir, 0755); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to create watcher path(%v): %w", parentDir, err)
		}
		if err = watcher.Add(parentDir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("cannot watch path(%v): %w", parentDir, err)
		}
	}

	return watcher.Close, nil
}

func pathEquals(path1, path2 string) bool {
	p1 := strings.ReplaceAll(path1, "\\", "/")
	p2 := strings.ReplaceAll(path2, "\\", "/")
	return p1 == p2
}
