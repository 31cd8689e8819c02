package vm

// IntMap is the Int-keyed associative mapping from spec.md §3. Value type V
// is one of Int, Float or *Str, selected by the opcode category that
// operates on a given register.
type IntMap[V any] struct {
	data   map[int64]V
	modSeq uint64 // bumped on every Store, snapshotted by IterBegin
}

// NewIntMap constructs an empty IntMap.
func NewIntMap[V any]() *IntMap[V] {
	return &IntMap[V]{data: make(map[int64]V)}
}

// Lookup returns the value at key, or the zero value of V if key is absent
// (spec.md §8 property 8).
func (m *IntMap[V]) Lookup(key int64) V {
	return m.data[key]
}

// Contains reports whether key is present.
func (m *IntMap[V]) Contains(key int64) bool {
	_, ok := m.data[key]
	return ok
}

// Store sets key to value and bumps the modification counter so any open
// iterator over this map is invalidated.
func (m *IntMap[V]) Store(key int64, value V) {
	m.data[key] = value
	m.modSeq++
}

// Len reports the number of entries.
func (m *IntMap[V]) Len() int {
	return len(m.data)
}

// Keys returns a snapshot of the map's keys in unspecified order, alongside
// the modification sequence at the time of the snapshot (for Iter).
func (m *IntMap[V]) Keys() ([]int64, uint64) {
	keys := make([]int64, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, m.modSeq
}

// StrMap is the String-keyed associative mapping from spec.md §3. Per
// SPEC_FULL.md's Open Question decision, keys are forced (materialised)
// before insertion or lookup — Go map keys must be plain comparable values,
// so laziness cannot be preserved into the key itself; this is the simpler
// of the two options spec.md §9 offers.
type StrMap[V any] struct {
	data   map[string]V
	modSeq uint64
}

// NewStrMap constructs an empty StrMap.
func NewStrMap[V any]() *StrMap[V] {
	return &StrMap[V]{data: make(map[string]V)}
}

func (m *StrMap[V]) Lookup(key *Str) V {
	return m.data[key.Materialise()]
}

func (m *StrMap[V]) Contains(key *Str) bool {
	_, ok := m.data[key.Materialise()]
	return ok
}

func (m *StrMap[V]) Store(key *Str, value V) {
	m.data[key.Materialise()] = value
	m.modSeq++
}

func (m *StrMap[V]) Len() int {
	return len(m.data)
}

func (m *StrMap[V]) Keys() ([]string, uint64) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, m.modSeq
}

// IterModCheck is satisfied by both IntMap and StrMap, letting Iter detect
// concurrent mutation without caring about the value or key type.
type IterModCheck interface {
	modSeqNow() uint64
}

func (m *IntMap[V]) modSeqNow() uint64 { return m.modSeq }
func (m *StrMap[V]) modSeqNow() uint64 { return m.modSeq }

// Iter is the opaque, single-pass cursor from spec.md §3: a finite sequence
// over a map's keys, snapshotted at IterBegin. Mutating the underlying map
// during iteration is a fatal VM error (spec.md §9 "Map iteration
// invalidation"), detected here via a modification counter embedded in the
// map and snapshotted when the iterator was created.
type Iter[K int64 | string] struct {
	keys     []K
	pos      int
	src      IterModCheck
	startSeq uint64
}

// NewIntIter snapshots m's current keys into a fresh iterator.
func NewIntIter[V any](m *IntMap[V]) *Iter[int64] {
	keys, seq := m.Keys()
	return &Iter[int64]{keys: keys, src: m, startSeq: seq}
}

// NewStrIter snapshots m's current keys into a fresh iterator.
func NewStrIter[V any](m *StrMap[V]) *Iter[string] {
	keys, seq := m.Keys()
	return &Iter[string]{keys: keys, src: m, startSeq: seq}
}

// HasNext reports whether Next would return another key, checking first
// that the source map has not been mutated since NewIntIter/NewStrIter.
func (it *Iter[K]) HasNext() (bool, error) {
	if it.src.modSeqNow() != it.startSeq {
		return false, &FatalError{Err: errInvariant}
	}
	return it.pos < len(it.keys), nil
}

// Next returns the next key in the snapshot and advances the cursor. Callers
// must check HasNext first; Next on an exhausted iterator is itself an
// invariant violation (the frontend is expected to guard every Next with a
// HasNext check, same as every other register-range obligation in
// spec.md §4.5).
func (it *Iter[K]) Next() (K, error) {
	ok, err := it.HasNext()
	if err != nil {
		var zero K
		return zero, err
	}
	if !ok {
		var zero K
		return zero, &FatalError{Err: errInvariant}
	}
	k := it.keys[it.pos]
	it.pos++
	return k, nil
}
