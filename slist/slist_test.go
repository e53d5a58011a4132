package slist

import (
	"slices"
	"testing"
)

func TestInsertPreservesOrder(t *testing.T) {
	l := New[int]()
	it := l.Begin()
	for i := 1; i <= 100; i++ {
		it.Insert(i)
	}

	got := l.Slice()
	if len(got) != 100 {
		t.Fatalf("Len = %d, want 100", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("element %d = %d, want %d", i, v, i+1)
		}
	}
	if l.Len() != 100 {
		t.Errorf("Len() = %d, want 100", l.Len())
	}
}

func TestRemoveEveryOther(t *testing.T) {
	l := New[int]()
	for i := 1; i <= 10; i++ {
		l.PushBack(i)
	}

	for it := l.Begin(); it.NotEnd(); {
		it.Remove()
		if it.NotEnd() {
			it.Next()
		}
	}

	want := []int{2, 4, 6, 8, 10}
	if got := l.Slice(); !slices.Equal(got, want) {
		t.Errorf("after remove = %v, want %v", got, want)
	}

	for it := l.Begin(); it.NotEnd(); {
		it.Remove()
	}
	if !l.IsEmpty() {
		t.Errorf("IsEmpty() = false after removing everything")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestPushBackAfterRemovingTail(t *testing.T) {
	l := Of("a", "b", "c")

	it := l.Begin()
	it.Next()
	it.Next()
	it.Remove()

	l.PushBack("d")
	want := []string{"a", "b", "d"}
	if got := l.Slice(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPushFront(t *testing.T) {
	l := New[int]()
	l.PushFront(1)
	l.PushFront(2)
	l.PushBack(3)

	want := []int{2, 1, 3}
	if got := l.Slice(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInsertInMiddle(t *testing.T) {
	l := Of(1, 4)
	it := l.Begin()
	it.Next()
	it.Insert(2)
	it.Insert(3)

	if it.Value() != 4 {
		t.Errorf("iterator moved to %d, want it to stay on 4", it.Value())
	}
	want := []int{1, 2, 3, 4}
	if got := l.Slice(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEmptyList(t *testing.T) {
	l := New[string]()
	if !l.IsEmpty() {
		t.Error("new list is not empty")
	}
	if l.Begin().NotEnd() {
		t.Error("Begin().NotEnd() = true on empty list")
	}

	var nilList *List[string]
	if nilList.Len() != 0 || !nilList.IsEmpty() {
		t.Error("nil list should behave as empty")
	}
	for range nilList.All() {
		t.Error("nil list yielded an element")
	}
}

func TestDestroy(t *testing.T) {
	l := Of(1, 2, 3)
	l.Destroy()
	if !l.IsEmpty() || l.Len() != 0 {
		t.Fatalf("list not empty after Destroy")
	}
	l.PushBack(7)
	if got := l.Slice(); !slices.Equal(got, []int{7}) {
		t.Errorf("reuse after Destroy = %v, want [7]", got)
	}
}

func TestValueAtEndPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Value at end did not panic")
		}
	}()
	New[int]().Begin().Value()
}
