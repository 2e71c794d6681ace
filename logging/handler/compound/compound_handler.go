package compound

import (
	"sync"

	"github.com/mogud/lumen/container"
	"github.com/mogud/lumen/logging"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	NodeId   int    `koanf:"NodeId"`   // 日志节点 Id
	NodeName string `koanf:"NodeName"` // 日志节点名
}

// Handler 将记录按注册顺序分发给一组下游 handler。
// AddHandler 返回的 id 可用于单独移除某个下游。
type Handler struct {
	lock   sync.Mutex
	nextID int
	proxy  *container.OrderedMap[int, logging.ILogHandler]
	opt    *Option
}

func NewHandler() *Handler {
	return &Handler{
		proxy: container.NewOrderedMap[int, logging.ILogHandler](),
		opt:   &Option{},
	}
}

func (ss *Handler) Construct(opt *Option) {
	if opt == nil {
		return
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.opt = opt
}

func (ss *Handler) Log(data *logging.LogData) {
	ss.lock.Lock()
	data.NodeID = ss.opt.NodeId
	data.NodeName = ss.opt.NodeName
	handlers := make(container.List[logging.ILogHandler], 0, ss.proxy.Len())
	ss.proxy.ScanKV(func(_ int, handler logging.ILogHandler) {
		handlers.Add(handler)
	})
	ss.lock.Unlock()

	for _, handler := range handlers {
		handler.Log(data)
	}
}

func (ss *Handler) AddHandler(handler logging.ILogHandler) int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	id := ss.nextID
	ss.nextID++
	ss.proxy.Add(id, handler)
	return id
}

func (ss *Handler) RemoveHandler(id int) bool {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.proxy.Remove(id)
}

func (ss *Handler) Clear() {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.proxy.Clear()
}

func (ss *Handler) Len() int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.proxy.Len()
}
