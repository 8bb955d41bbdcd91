package stash

import "iter"

// Entities is the live-entity view: the dense ordered sequence of live
// identifiers, the governing dimension every other view zips against.
type Entities struct {
	idx *entityIndex
}

func (e Entities) Len() int {
	return len(e.idx.ids)
}

func (e Entities) At(row int) (Entity, bool) {
	return e.idx.ids[row], true
}

// All iterates the live entities in row order.
func (e Entities) All() iter.Seq[Entity] {
	return Matches[Entity](e)
}

// Rows yields every row's result in row order, absent rows included. The
// sequence is restartable; each range starts over from row 0.
func Rows[V any](view RowView[V]) iter.Seq2[V, bool] {
	return func(yield func(V, bool) bool) {
		for row := 0; row < view.Len(); row++ {
			if !yield(view.At(row)) {
				return
			}
		}
	}
}

// Matches is the terminal filter-present operation: it yields only the rows
// where the view is present, in row order.
func Matches[V any](view RowView[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for row := 0; row < view.Len(); row++ {
			v, ok := view.At(row)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

type Zipped2[A, B any] struct {
	A A
	B B
}

type Zipped3[A, B, C any] struct {
	A A
	B B
	C C
}

type Zipped4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Zip2 combines two views positionally: a row is present in the composite
// only when it is present in every member. Correctness relies on all members
// being taken from the same storage at the same generation, so that they
// share row order. Higher arities nest (Zip2(Zip2(a, b), c)) or use Zip3/Zip4.
func Zip2[A, B any](a RowView[A], b RowView[B]) RowView[Zipped2[A, B]] {
	return zip2[A, B]{a: a, b: b}
}

func Zip3[A, B, C any](a RowView[A], b RowView[B], c RowView[C]) RowView[Zipped3[A, B, C]] {
	return zip3[A, B, C]{a: a, b: b, c: c}
}

func Zip4[A, B, C, D any](a RowView[A], b RowView[B], c RowView[C], d RowView[D]) RowView[Zipped4[A, B, C, D]] {
	return zip4[A, B, C, D]{a: a, b: b, c: c, d: d}
}

type zip2[A, B any] struct {
	a RowView[A]
	b RowView[B]
}

func (z zip2[A, B]) Len() int {
	return min(z.a.Len(), z.b.Len())
}

func (z zip2[A, B]) At(row int) (Zipped2[A, B], bool) {
	av, aok := z.a.At(row)
	bv, bok := z.b.At(row)
	if !aok || !bok {
		return Zipped2[A, B]{}, false
	}
	return Zipped2[A, B]{A: av, B: bv}, true
}

type zip3[A, B, C any] struct {
	a RowView[A]
	b RowView[B]
	c RowView[C]
}

func (z zip3[A, B, C]) Len() int {
	return min(z.a.Len(), z.b.Len(), z.c.Len())
}

func (z zip3[A, B, C]) At(row int) (Zipped3[A, B, C], bool) {
	av, aok := z.a.At(row)
	bv, bok := z.b.At(row)
	cv, cok := z.c.At(row)
	if !aok || !bok || !cok {
		return Zipped3[A, B, C]{}, false
	}
	return Zipped3[A, B, C]{A: av, B: bv, C: cv}, true
}

type zip4[A, B, C, D any] struct {
	a RowView[A]
	b RowView[B]
	c RowView[C]
	d RowView[D]
}

func (z zip4[A, B, C, D]) Len() int {
	return min(z.a.Len(), z.b.Len(), z.c.Len(), z.d.Len())
}

func (z zip4[A, B, C, D]) At(row int) (Zipped4[A, B, C, D], bool) {
	av, aok := z.a.At(row)
	bv, bok := z.b.At(row)
	cv, cok := z.c.At(row)
	dv, dok := z.d.At(row)
	if !aok || !bok || !cok || !dok {
		return Zipped4[A, B, C, D]{}, false
	}
	return Zipped4[A, B, C, D]{A: av, B: bv, C: cv, D: dv}, true
}
