package container

type List[T any] []T

func NewList[T any](args ...T) List[T] {
	result := make(List[T], len(args))
	copy(result, args)
	return result
}

func (list List[T]) Scan(fn func(elem T)) {
	for _, v := range list {
		fn(v)
	}
}

func (list List[T]) ScanIf(fn func(elem T) bool) {
	for _, v := range list {
		if !fn(v) {
			break
		}
	}
}

func (list List[T]) Len() int {
	return len(list)
}

func (list List[T]) IsEmpty() bool {
	return list.Len() == 0
}

func (list List[T]) Copy() List[T] {
	newList := make(List[T], list.Len())
	copy(newList, list)
	return newList
}

func (list *List[T]) Add(elem T) {
	*list = append(*list, elem)
}

func (list *List[T]) RemoveIndex(index int) {
	*list = append((*list)[:index], (*list)[index+1:]...)
}

func (list *List[T]) RemoveIf(fn func(elem T) bool) {
	for i := 0; i < list.Len(); {
		if fn((*list)[i]) {
			list.RemoveIndex(i)
		} else {
			i++
		}
	}
}

func (list *List[T]) Clear() {
	*list = (*list)[:0]
}

func ListSearch[T comparable](list List[T], elem T) int {
	for idx, value := range list {
		if value == elem {
			return idx
		}
	}
	return -1
}

func ListContains[T comparable](list List[T], elem T) bool {
	return ListSearch(list, elem) != -1
}
