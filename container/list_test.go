package container_test

import (
	"testing"

	"github.com/mogud/lumen/container"
	"github.com/stretchr/testify/assert"
)

func TestListBasics(t *testing.T) {
	list := container.NewList(1, 2, 3)
	assert.Equal(t, 3, list.Len())
	assert.False(t, list.IsEmpty())

	list.Add(4)
	assert.Equal(t, []int(list), []int{1, 2, 3, 4})

	list.RemoveIndex(0)
	assert.Equal(t, []int(list), []int{2, 3, 4})

	list.RemoveIf(func(elem int) bool { return elem%2 == 0 })
	assert.Equal(t, []int(list), []int{3})

	list.Clear()
	assert.True(t, list.IsEmpty())
}

func TestListScan(t *testing.T) {
	list := container.NewList("a", "b", "c")

	var collected []string
	list.Scan(func(elem string) {
		collected = append(collected, elem)
	})
	assert.Equal(t, []string{"a", "b", "c"}, collected)

	collected = collected[:0]
	list.ScanIf(func(elem string) bool {
		collected = append(collected, elem)
		return elem != "b"
	})
	assert.Equal(t, []string{"a", "b"}, collected)
}

func TestListSearch(t *testing.T) {
	list := container.NewList(10, 20, 30)
	assert.Equal(t, 1, container.ListSearch(list, 20))
	assert.Equal(t, -1, container.ListSearch(list, 99))
	assert.True(t, container.ListContains(list, 30))
	assert.False(t, container.ListContains(list, 99))

	copied := list.Copy()
	copied.Add(40)
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, 4, copied.Len())
}
