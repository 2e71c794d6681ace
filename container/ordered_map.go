package container

import (
	"cmp"

	"github.com/tidwall/btree"
)

type Pair[T, U any] struct {
	First  T
	Second U
}

type OrderedMap[T cmp.Ordered, U any] struct {
	base btree.Map[T, U]
}

func NewOrderedMap[T cmp.Ordered, U any](args ...Pair[T, U]) *OrderedMap[T, U] {
	result := &OrderedMap[T, U]{}
	for _, entry := range args {
		result.base.Set(entry.First, entry.Second)
	}
	return result
}

func (m *OrderedMap[T, U]) Add(key T, value U) {
	m.base.Set(key, value)
}

func (m *OrderedMap[T, U]) Remove(key T) bool {
	_, ok := m.base.Delete(key)
	return ok
}

func (m *OrderedMap[T, U]) TryGet(key T) (U, bool) {
	return m.base.Get(key)
}

func (m *OrderedMap[T, U]) Contains(key T) bool {
	_, ok := m.base.Get(key)
	return ok
}

func (m *OrderedMap[T, U]) Len() int {
	return m.base.Len()
}

func (m *OrderedMap[T, U]) IsEmpty() bool {
	return m.Len() == 0
}

func (m *OrderedMap[T, U]) Clear() {
	if m.base.Len() > 0 {
		var keys []T
		m.base.Scan(func(key T, _ U) bool {
			keys = append(keys, key)
			return true
		})
		for _, key := range keys {
			m.base.Delete(key)
		}
	}
}

func (m *OrderedMap[T, U]) Scan(fn func(entry Pair[T, U])) {
	m.base.Scan(func(key T, value U) bool {
		fn(Pair[T, U]{key, value})
		return true
	})
}

func (m *OrderedMap[T, U]) ScanKV(fn func(key T, value U)) {
	m.base.Scan(func(key T, value U) bool {
		fn(key, value)
		return true
	})
}

func (m *OrderedMap[T, U]) ScanKVIf(fn func(key T, value U) bool) {
	m.base.Scan(fn)
}

// ScanKVDesc 按键降序遍历
func (m *OrderedMap[T, U]) ScanKVDesc(fn func(key T, value U)) {
	m.base.Reverse(func(key T, value U) bool {
		fn(key, value)
		return true
	})
}

// ScanKVDescIf 按键降序遍历，fn 返回 false 时停止
func (m *OrderedMap[T, U]) ScanKVDescIf(fn func(key T, value U) bool) {
	m.base.Reverse(fn)
}
