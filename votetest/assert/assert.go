package assert

import (
	"math/big"
	"reflect"
)

// Tester is implemented by *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test unless value is nil. Typed nil pointers stored in an
// interface count as nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of registered errors.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) (isnil bool) {
	if value == nil {
		return true
	}
	defer func() {
		// Only chan, func, interface, map, pointer and slice can be nil.
		if recover() != nil {
			isnil = false
		}
	}()
	return reflect.ValueOf(value).IsNil()
}

// Equal fails the test unless both values are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got matches want. Registered errors match
// any error wrapping them.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if m, ok := want.(interface{ Is(error) bool }); ok && m.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// Sums fails the test unless amounts add up to total. It is meant for
// checking that a transfer of tokens neither creates nor loses any. The
// sum is computed without overflow.
func Sums(t Tester, total uint64, amounts ...uint64) {
	t.Helper()
	sum := new(big.Int)
	for _, a := range amounts {
		sum.Add(sum, new(big.Int).SetUint64(a))
	}
	if want := new(big.Int).SetUint64(total); sum.Cmp(want) != 0 {
		t.Fatalf("amounts %v sum up to %s, want %d", amounts, sum, total)
	}
}
