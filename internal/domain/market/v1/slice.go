package v1

// Slice exposes contiguous-feeling indexed access over possibly-disjoint
// backing arrays. Query results are assembled from historical buffers and
// live ring tails that cannot be merged without copying; a Slice keeps each
// constituent as its own segment, in time order.
type Slice[T any] struct {
	segments [][]T
	count    int
}

// NewSlice creates an empty slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

// Append adds a backing segment to the end of the slice. Empty segments are
// ignored. Records inside seg must already be in time order and follow all
// previously appended segments.
func (s *Slice[T]) Append(seg []T) {
	if len(seg) == 0 {
		return
	}
	s.segments = append(s.segments, seg)
	s.count += len(seg)
}

// Prepend adds a backing segment in front of all existing segments.
func (s *Slice[T]) Prepend(seg []T) {
	if len(seg) == 0 {
		return
	}
	s.segments = append([][]T{seg}, s.segments...)
	s.count += len(seg)
}

// Len returns the total number of records across all segments.
func (s *Slice[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// At returns a pointer to the i-th record in time order, or nil when i is out
// of range. The record is shared with the backing storage and must be treated
// as read-only.
func (s *Slice[T]) At(i int) *T {
	if s == nil || i < 0 || i >= s.count {
		return nil
	}
	for _, seg := range s.segments {
		if i < len(seg) {
			return &seg[i]
		}
		i -= len(seg)
	}
	return nil
}

// Segments returns the backing segments in time order. The returned slices
// are shared with the backing storage and must be treated as read-only.
func (s *Slice[T]) Segments() [][]T {
	if s == nil {
		return nil
	}
	return s.segments
}

// First returns the first record, or nil when the slice is empty.
func (s *Slice[T]) First() *T {
	return s.At(0)
}

// Last returns the last record, or nil when the slice is empty.
func (s *Slice[T]) Last() *T {
	return s.At(s.Len() - 1)
}
