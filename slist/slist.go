// Package slist implements an ordered, singly linked list with a sentinel
// head node. It backs every variable-length list in the syntax tree and the
// bucket chains of package symtab, so insertion order is always the
// iteration order.
package slist

import "iter"

type node[T any] struct {
	next *node[T]
	data T
}

// List is an ordered sequence of values. The zero value is not usable; call New.
type List[T any] struct {
	head *node[T] // sentinel, never holds data
	tail *node[T] // last node, or head when empty
	n    int
}

// New returns an empty list.
func New[T any]() *List[T] {
	head := &node[T]{}
	return &List[T]{head: head, tail: head}
}

// Of returns a list holding vals in order.
func Of[T any](vals ...T) *List[T] {
	l := New[T]()
	for _, v := range vals {
		l.PushBack(v)
	}
	return l
}

// Destroy unlinks every node. The list is empty afterwards and may be reused.
func (l *List[T]) Destroy() {
	for n := l.head.next; n != nil; {
		next := n.next
		n.next = nil
		n = next
	}
	l.head.next = nil
	l.tail = l.head
	l.n = 0
}

func (l *List[T]) IsEmpty() bool {
	return l == nil || l.head.next == nil
}

func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// Begin returns an iterator positioned at the first element.
func (l *List[T]) Begin() *Iterator[T] {
	return &Iterator[T]{list: l, last: l.head, curr: l.head.next}
}

// PushFront inserts v before the first element.
func (l *List[T]) PushFront(v T) {
	l.Begin().Insert(v)
}

// PushBack appends v after the last element.
func (l *List[T]) PushBack(v T) {
	it := &Iterator[T]{list: l, last: l.tail}
	it.Insert(v)
}

// All yields the elements in order. A nil list yields nothing.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		for n := l.head.next; n != nil; n = n.next {
			if !yield(n.data) {
				return
			}
		}
	}
}

// Slice copies the elements into a new slice.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Iterator denotes a position in a List: the node it points at (curr) and the
// node before it (last), which is the sentinel at the beginning.
type Iterator[T any] struct {
	list *List[T]
	last *node[T]
	curr *node[T]
}

// NotEnd reports whether the iterator points at an element.
func (it *Iterator[T]) NotEnd() bool {
	return it.curr != nil
}

// Next moves to the following element. It panics at the end of the list.
func (it *Iterator[T]) Next() {
	if it.curr == nil {
		panic("slist: Next past end of list")
	}
	it.last = it.curr
	it.curr = it.curr.next
}

// Value returns the element the iterator points at. It panics at the end of
// the list; the sentinel is never returned.
func (it *Iterator[T]) Value() T {
	if it.curr == nil {
		panic("slist: Value at end of list")
	}
	return it.curr.data
}

// Insert links v between the previous position and the current element and
// makes the new node the previous position. The iterator keeps pointing at
// the same element, so repeated inserts come out in call order.
func (it *Iterator[T]) Insert(v T) {
	n := &node[T]{next: it.curr, data: v}
	it.last.next = n
	it.last = n
	if n.next == nil {
		it.list.tail = n
	}
	it.list.n++
}

// Remove unlinks the current element and moves to the one after it.
func (it *Iterator[T]) Remove() {
	if it.curr == nil {
		panic("slist: Remove at end of list")
	}
	removed := it.curr
	it.last.next = removed.next
	it.curr = removed.next
	removed.next = nil
	if it.list.tail == removed {
		it.list.tail = it.last
	}
	it.list.n--
}
