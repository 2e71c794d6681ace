package container_test

import (
	"testing"

	"github.com/mogud/lumen/container"
	"github.com/stretchr/testify/assert"
)

func TestOrderedMapScanOrder(t *testing.T) {
	m := container.NewOrderedMap(
		container.Pair[int, string]{3, "c"},
		container.Pair[int, string]{1, "a"},
		container.Pair[int, string]{2, "b"},
	)

	var keys []int
	var values []string
	m.ScanKV(func(key int, value string) {
		keys = append(keys, key)
		values = append(values, value)
	})
	assert.Equal(t, []int{1, 2, 3}, keys)
	assert.Equal(t, []string{"a", "b", "c"}, values)

	keys = keys[:0]
	m.ScanKVDesc(func(key int, _ string) {
		keys = append(keys, key)
	})
	assert.Equal(t, []int{3, 2, 1}, keys)
}

func TestOrderedMapAddRemove(t *testing.T) {
	m := container.NewOrderedMap[string, int]()
	assert.True(t, m.IsEmpty())

	m.Add("x", 1)
	m.Add("y", 2)
	m.Add("x", 3) // 覆盖
	assert.Equal(t, 2, m.Len())

	v, ok := m.TryGet("x")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.True(t, m.Remove("x"))
	assert.False(t, m.Remove("x"))
	assert.False(t, m.Contains("x"))
	assert.True(t, m.Contains("y"))

	m.Clear()
	assert.True(t, m.IsEmpty())
}

func TestOrderedMapScanKVIf(t *testing.T) {
	m := container.NewOrderedMap(
		container.Pair[int, string]{1, "a"},
		container.Pair[int, string]{2, "b"},
		container.Pair[int, string]{3, "c"},
	)

	var seen []int
	m.ScanKVIf(func(key int, _ string) bool {
		seen = append(seen, key)
		return key < 2
	})
	assert.Equal(t, []int{1, 2}, seen)
}
