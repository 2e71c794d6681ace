package option

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	jsonparser "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/mogud/lumen/container"
	stripjsoncomments "github.com/trapcodeio/go-strip-json-comments"
)

var lock sync.RWMutex
var k = koanf.New(":")
var loadedFiles container.List[string]
var typeKeyBinding = make(map[reflect.Type]string)
var changedCallbacks container.List[func()]

// GetByKey 通过 key 返回配置
func GetByKey(key string, inout interface{}) error {
	lock.RLock()
	defer lock.RUnlock()

	if err := k.Unmarshal(key, inout); err != nil {
		return fmt.Errorf("failed to unmarshal option key(%v): %w", key, err)
	}
	return nil
}

// Get 通过类型获取配置，类型需先经 BindType 绑定到 key
func Get[T any]() (out *T, err error) {
	out = new(T)
	optionType := reflect.TypeOf((*T)(nil))

	lock.RLock()
	key, ok := typeKeyBinding[optionType]
	lock.RUnlock()

	if ok {
		err = GetByKey(key, out)
	}
	return
}

// BindType 将类型绑定到 key，而后通过 Get 可以直接获取配置数据
func BindType[T any](key string) {
	lock.Lock()
	defer lock.Unlock()

	typeKeyBinding[reflect.TypeOf((*T)(nil))] = key
}

// AddJSONFile 加载 JSON 配置（允许注释），后加载的覆盖先加载的
func AddJSONFile(filePath string) error {
	lock.Lock()
	defer lock.Unlock()

	if err := loadJSONLocked(k, filePath); err != nil {
		return err
	}

	if !container.ListContains(loadedFiles, filePath) {
		loadedFiles.Add(filePath)
	}
	return nil
}

func loadJSONLocked(dst *koanf.Koanf, filePath string) error {
	jsonRawBytes, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read json file(%v): %w", filePath, err)
	}

	jsonWithoutComments := stripjsoncomments.Strip(string(jsonRawBytes))
	err = dst.Load(rawbytes.Provider([]byte(jsonWithoutComments)), jsonparser.Parser())
	if err != nil {
		return fmt.Errorf("failed to parse json file(%s): %w", filePath, err)
	}
	return nil
}

// Reload 重新读取所有已加载文件并通知变更回调
func Reload() error {
	lock.Lock()

	newK := koanf.New(":")
	var firstErr error
	loadedFiles.Scan(func(filePath string) {
		if err := loadJSONLocked(newK, filePath); err != nil && firstErr == nil {
			firstErr = err
		}
	})

	if firstErr != nil {
		lock.Unlock()
		return firstErr
	}

	k = newK
	callbacks := changedCallbacks.Copy()
	lock.Unlock()

	callbacks.Scan(func(cb func()) {
		cb()
	})
	return nil
}

// OnChanged 注册配置变更回调，Reload 成功后触发
func OnChanged(cb func()) {
	lock.Lock()
	defer lock.Unlock()

	changedCallbacks.Add(cb)
}

// Reset 清空全部配置状态，仅供测试使用
func Reset() {
	lock.Lock()
	defer lock.Unlock()

	k = koanf.New(":")
	loadedFiles.Clear()
	changedCallbacks.Clear()
	typeKeyBinding = make(map[reflect.Type]string)
}
