package corelib_test

import (
	"testing"

	"github.com/fermian/wren/corelib"
	"github.com/fermian/wren/vm"
	"github.com/stretchr/testify/require"
)

func newLoadedVM(t *testing.T) *vm.VM {
	t.Helper()
	m := vm.NewVM()
	corelib.Load(m)
	return m
}

func call(t *testing.T, m *vm.VM, class *vm.ObjClass, name string, args ...vm.Value) vm.Value {
	t.Helper()
	sym := m.Methods().FindSymbol(name)
	require.GreaterOrEqual(t, sym, 0, "symbol %q never registered", name)
	method := class.Methods[sym]
	require.Equal(t, vm.MethodPrimitive, method.Type, "method %q is not a primitive", name)
	return method.Primitive(m, nil, args)
}

func TestNumberArithmeticPrimitives(t *testing.T) {
	m := newLoadedVM(t)

	result := call(t, m, m.NumClass, "+", vm.NumVal(2), vm.NumVal(3))
	require.Equal(t, 5.0, result.AsNum())

	result = call(t, m, m.NumClass, "-", vm.NumVal(5), vm.NumVal(3))
	require.Equal(t, 2.0, result.AsNum())

	result = call(t, m, m.NumClass, "*", vm.NumVal(4), vm.NumVal(3))
	require.Equal(t, 12.0, result.AsNum())

	result = call(t, m, m.NumClass, "/", vm.NumVal(9), vm.NumVal(3))
	require.Equal(t, 3.0, result.AsNum())

	result = call(t, m, m.NumClass, "negate", vm.NumVal(9))
	require.Equal(t, -9.0, result.AsNum())
}

func TestNumberComparisonPrimitives(t *testing.T) {
	m := newLoadedVM(t)

	require.True(t, call(t, m, m.NumClass, "<", vm.NumVal(1), vm.NumVal(2)).AsBool())
	require.False(t, call(t, m, m.NumClass, "<", vm.NumVal(2), vm.NumVal(1)).AsBool())
	require.True(t, call(t, m, m.NumClass, ">=", vm.NumVal(2), vm.NumVal(2)).AsBool())
	require.True(t, call(t, m, m.NumClass, "=", vm.NumVal(3), vm.NumVal(3)).AsBool())
	require.False(t, call(t, m, m.NumClass, "=", vm.NumVal(3), vm.NumVal(4)).AsBool())
}

func TestBooleanPrimitives(t *testing.T) {
	m := newLoadedVM(t)

	require.True(t, call(t, m, m.BoolClass, "not", vm.FalseVal).AsBool())
	require.False(t, call(t, m, m.BoolClass, "not", vm.TrueVal).AsBool())

	require.True(t, call(t, m, m.BoolClass, "&", vm.TrueVal, vm.TrueVal).AsBool())
	require.False(t, call(t, m, m.BoolClass, "&", vm.TrueVal, vm.FalseVal).AsBool())

	require.True(t, call(t, m, m.BoolClass, "|", vm.FalseVal, vm.TrueVal).AsBool())
	require.False(t, call(t, m, m.BoolClass, "|", vm.FalseVal, vm.FalseVal).AsBool())
}

func TestStringPrimitives(t *testing.T) {
	m := newLoadedVM(t)

	a := m.NewString("foo")
	b := m.NewString("bar")

	concat := call(t, m, m.StringClass, "+", a, b)
	require.Equal(t, "foobar", concat.AsString().Value)

	same := m.NewString("foo")
	require.True(t, call(t, m, m.StringClass, "=", a, same).AsBool())
	require.False(t, call(t, m, m.StringClass, "=", a, b).AsBool())

	size := call(t, m, m.StringClass, "size", a)
	require.Equal(t, 3.0, size.AsNum())
}

// Invariant 5 (partial): identity is by Go pointer for objects, by
// value for immediates, and never crosses types.
func TestObjectIdentityPrimitive(t *testing.T) {
	m := newLoadedVM(t)

	s1 := m.NewString("x")
	s2 := m.NewString("x")

	require.True(t, call(t, m, m.ObjectClass, "==", s1, s1).AsBool())
	require.False(t, call(t, m, m.ObjectClass, "==", s1, s2).AsBool())
	require.True(t, call(t, m, m.ObjectClass, "==", vm.NumVal(1), vm.NumVal(1)).AsBool())
	require.False(t, call(t, m, m.ObjectClass, "==", vm.NumVal(1), vm.TrueVal).AsBool())
}

func TestObjectClassPrimitive(t *testing.T) {
	m := newLoadedVM(t)

	result := call(t, m, m.ObjectClass, "class", vm.NumVal(1))
	require.Same(t, m.NumClass, result.AsClass())

	result = call(t, m, m.ObjectClass, "class", vm.TrueVal)
	require.Same(t, m.BoolClass, result.AsClass())

	result = call(t, m, m.ObjectClass, "class", vm.NullVal)
	require.Same(t, m.NullClass, result.AsClass())

	str := m.NewString("s")
	result = call(t, m, m.ObjectClass, "class", str)
	require.Same(t, m.StringClass, result.AsClass())
}
