package asm_test

import (
	"testing"

	"github.com/fermian/wren/asm"
	"github.com/fermian/wren/corelib"
	"github.com/fermian/wren/vm"
	"github.com/stretchr/testify/require"
)

func TestBuilderConstEnd(t *testing.T) {
	m := vm.NewVM()
	b := asm.New(m)
	b.Const(vm.NumVal(42)).End()

	result := m.Interpret(b.Fn())
	require.Equal(t, 42.0, result.AsNum())
}

func TestBuilderJumpIf(t *testing.T) {
	m := vm.NewVM()
	b := asm.New(m)

	// JumpIf's offset skips the true branch's Const+Jump pair (4 bytes);
	// Jump's offset skips the false branch's trailing Const (2 bytes).
	b.False().JumpIf(4)
	b.Const(vm.NumVal(1))
	b.Jump(2)
	b.Const(vm.NumVal(2))
	b.End()

	result := m.Interpret(b.Fn())
	require.Equal(t, 2.0, result.AsNum())
}

func TestBuilderClassMethodDispatch(t *testing.T) {
	m := vm.NewVM()
	corelib.Load(m)

	method := asm.New(m)
	method.Const(vm.NumVal(99)).End()

	program := asm.New(m)
	program.
		Class().
		Method(m, "m", program.ConstFnIndex(method.Fn())).
		StoreGlobal(m, "C").
		Pop().
		LoadGlobal(m, "C").
		Call(m, 1, "new").
		Call(m, 1, "m").
		End()

	result := m.Interpret(program.Fn())
	require.Equal(t, 99.0, result.AsNum())
}

func TestBuilderCallRejectsOutOfRangeArity(t *testing.T) {
	m := vm.NewVM()
	b := asm.New(m)

	require.Panics(t, func() {
		b.Call(m, 0, "x")
	})
	require.Panics(t, func() {
		b.Call(m, 12, "x")
	})
}
