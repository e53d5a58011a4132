// Package symtab provides a fixed-size chained hash table keyed by strings.
//
// The lexer uses one to recognize keywords and punctuation, and the parser
// uses another to remember which identifiers name record types. Each bucket
// is an slist.List, so entries in a bucket keep insertion order.
package symtab

import (
	"errors"
	"fmt"

	"github.com/dhamidi/minijavac/slist"
)

// ErrDuplicateKey is returned by Insert when the key is already present and
// duplicate checking is enabled.
var ErrDuplicateKey = errors.New("duplicate key")

type entry[V any] struct {
	key   string
	value V
}

// Table maps string keys to values of type V.
type Table[V any] struct {
	buckets  []*slist.List[entry[V]]
	n        int
	checkDup bool
}

// Option configures a Table.
type Option func(*options)

type options struct {
	allowDuplicates bool
}

// AllowDuplicates disables the duplicate check in Insert. Lookup then
// returns the earliest inserted entry for a key.
func AllowDuplicates() Option {
	return func(o *options) {
		o.allowDuplicates = true
	}
}

// New creates a table with the given number of buckets, which must be positive.
func New[V any](buckets int, opts ...Option) *Table[V] {
	if buckets <= 0 {
		panic(fmt.Sprintf("symtab: invalid bucket count %d", buckets))
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	t := &Table[V]{
		buckets:  make([]*slist.List[entry[V]], buckets),
		checkDup: !o.allowDuplicates,
	}
	for i := range t.buckets {
		t.buckets[i] = slist.New[entry[V]]()
	}
	return t
}

// Hash is the ELF hash of key. The result always fits in 31 bits.
func Hash(key string) uint32 {
	var h uint32
	for i := 0; i < len(key); i++ {
		h = h<<4 + uint32(key[i])
		if g := h & 0xF0000000; g != 0 {
			h ^= g >> 24
			h ^= g
		}
	}
	return h & 0x7FFFFFFF
}

func (t *Table[V]) bucket(key string) *slist.List[entry[V]] {
	return t.buckets[Hash(key)%uint32(len(t.buckets))]
}

// Insert adds key with value. With duplicate checking on (the default), an
// existing key is left untouched and ErrDuplicateKey is returned.
func (t *Table[V]) Insert(key string, value V) error {
	if t.buckets == nil {
		panic("symtab: Insert on destroyed table")
	}
	b := t.bucket(key)
	if t.checkDup {
		for e := range b.All() {
			if e.key == key {
				return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
			}
		}
	}
	b.PushBack(entry[V]{key: key, value: value})
	t.n++
	return nil
}

// Lookup returns the value stored under key.
func (t *Table[V]) Lookup(key string) (V, bool) {
	var zero V
	if t.buckets == nil {
		return zero, false
	}
	for e := range t.bucket(key).All() {
		if e.key == key {
			return e.value, true
		}
	}
	return zero, false
}

// Contains reports whether key is present.
func (t *Table[V]) Contains(key string) bool {
	_, ok := t.Lookup(key)
	return ok
}

// Len returns the number of entries.
func (t *Table[V]) Len() int {
	return t.n
}

// Keys returns every key, bucket by bucket.
func (t *Table[V]) Keys() []string {
	keys := make([]string, 0, t.n)
	for _, b := range t.buckets {
		for e := range b.All() {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Destroy releases all entries. The table must not be inserted into afterwards.
func (t *Table[V]) Destroy() {
	for _, b := range t.buckets {
		b.Destroy()
	}
	t.buckets = nil
	t.n = 0
}

// Stats describes how entries are spread across buckets.
type Stats struct {
	Elements     int
	Buckets      int
	UsedBuckets  int
	LongestChain int
}

// LoadFactor is the number of elements per bucket.
func (s Stats) LoadFactor() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.Elements) / float64(s.Buckets)
}

// Utilization is the fraction of buckets holding at least one element.
func (s Stats) Utilization() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.UsedBuckets) / float64(s.Buckets)
}

func (s Stats) String() string {
	return fmt.Sprintf("element count = %d, load factor = %.2f, bucket util = %.2f",
		s.Elements, s.LoadFactor(), s.Utilization())
}

// Stats computes the current distribution.
func (t *Table[V]) Stats() Stats {
	s := Stats{Elements: t.n, Buckets: len(t.buckets)}
	for _, b := range t.buckets {
		if l := b.Len(); l > 0 {
			s.UsedBuckets++
			s.LongestChain = max(s.LongestChain, l)
		}
	}
	return s
}
