package lisp

import "github.com/filefrog/n7/pkg/fault"

// Cons returns a new pair.  If tail is a list the result is a list as well.
// 	(cons head tail)
func Cons(head, tail *LVal) *LVal {
	if head == nil || tail == nil {
		fault.Abort(fault.TypeMismatch, "cons() called with NULL value")
	}
	v := alloc(LCons)
	v.native = &ConsData{CAR: head, CDR: tail}
	return v
}

func consData(fn string, v *LVal) *ConsData {
	mustBeType(fn, v, LCons)
	return v.native.(*ConsData)
}

// CAR returns the head of pair v.  The CAR of nil is nil.
func CAR(v *LVal) *LVal {
	if v == nil {
		fault.Abort(fault.TypeMismatch, "car() called with NULL cons")
	}
	if v == lnil {
		return lnil
	}
	return consData("car", v).CAR
}

// CDR returns the tail of pair v.  The CDR of nil is nil.
func CDR(v *LVal) *LVal {
	if v == nil {
		fault.Abort(fault.TypeMismatch, "cdr() called with NULL cons")
	}
	if v == lnil {
		return lnil
	}
	return consData("cdr", v).CDR
}

// SetCAR stores w in the head of pair v.  The change is visible to every
// holder of v.
func SetCAR(v, w *LVal) {
	if w == nil {
		fault.Abort(fault.TypeMismatch, "setcar() called with NULL value")
	}
	consData("setcar", v).CAR = w
}

// SetCDR stores w in the tail of pair v.  The change is visible to every
// holder of v.
func SetCDR(v, w *LVal) {
	if w == nil {
		fault.Abort(fault.TypeMismatch, "setcdr() called with NULL value")
	}
	consData("setcdr", v).CDR = w
}

// List returns a proper list containing the elements of vs in order.
func List(vs ...*LVal) *LVal {
	lis := lnil
	for i := len(vs) - 1; i >= 0; i-- {
		lis = Cons(vs[i], lis)
	}
	return lis
}

// Reverse returns a new list with the elements of lis in reverse order.  lis
// must be a proper list.
func Reverse(lis *LVal) *LVal {
	rev := lnil
	for it := NewListIterator(lis); it.Next(); {
		rev = Cons(it.Value(), rev)
	}
	return rev
}

// Len returns the number of pairs in the chain starting at lis.  Len returns
// false if lis is not a proper list.
func Len(lis *LVal) (int, bool) {
	n := 0
	for lis != lnil {
		if lis.Type() != LCons {
			return n, false
		}
		lis = lis.native.(*ConsData).CDR
		n++
	}
	return n, true
}

// Slice collects the elements of proper list lis.
func Slice(lis *LVal) []*LVal {
	var s []*LVal
	for it := NewListIterator(lis); it.Next(); {
		s = append(s, it.Value())
	}
	return s
}

// ListBuilder constructs a list by appending to its end.
type ListBuilder struct {
	front *LVal
	back  *LVal
}

// NewListBuilder returns an empty ListBuilder.
func NewListBuilder() *ListBuilder {
	return &ListBuilder{front: lnil}
}

// List returns the list built so far.  Later calls to Append modify the
// returned list.
func (b *ListBuilder) List() *LVal {
	if b.front == nil {
		return lnil
	}
	return b.front
}

// Append adds elements to the end of the list.
func (b *ListBuilder) Append(vs ...*LVal) {
	for _, v := range vs {
		cell := Cons(v, lnil)
		if b.back == nil {
			b.front = cell
		} else {
			SetCDR(b.back, cell)
		}
		b.back = cell
	}
}

// Terminate sets the tail of the last pair in the list to v, producing an
// improper list when v is not nil.  Terminate panics if nothing has been
// appended.
func (b *ListBuilder) Terminate(v *LVal) {
	if b.back == nil {
		fault.Abort(fault.TypeMismatch, "cannot terminate an empty list")
	}
	SetCDR(b.back, v)
}

// ListIterator iterates through the elements of a proper list.  Iterating an
// improper list signals a fault when the non-list tail is reached.
type ListIterator struct {
	v    *LVal
	cell *LVal
	rest *LVal
}

// NewListIterator returns a ListIterator positioned before the first element
// of lis.
func NewListIterator(lis *LVal) *ListIterator {
	return &ListIterator{v: lnil, rest: lis}
}

// Next advances the iterator.  Next returns false when the list is
// exhausted.
func (it *ListIterator) Next() bool {
	if it.rest == lnil {
		return false
	}
	data := consData("list", it.rest)
	it.cell = it.rest
	it.v = data.CAR
	it.rest = data.CDR
	return true
}

// Value returns the current element.
func (it *ListIterator) Value() *LVal {
	return it.v
}

// Cell returns the pair holding the current element, so that callers may
// replace the element in place.
func (it *ListIterator) Cell() *LVal {
	return it.cell
}

// Rest returns the elements not yet iterated over.
func (it *ListIterator) Rest() *LVal {
	return it.rest
}
