package vm_test

import (
	"testing"

	"github.com/fermian/wren/vm"
	"github.com/stretchr/testify/require"
)

// Scenario 7 / Invariant 1: allocate many unreachable strings, pin one,
// leave the rest unreachable, collect. The pinned string survives; the
// unpinned ones are swept and totalAllocated shrinks accordingly.
func TestCollectGarbageReclaimsUnreachable(t *testing.T) {
	m := vm.NewVM()

	pinned := m.NewString("kept")
	m.PinObj(pinned)

	for i := 0; i < 50; i++ {
		m.NewString("garbage")
	}

	before := m.TotalAllocated()
	stats := m.CollectGarbage()
	require.Greater(t, stats.ObjectsFreed, 0)
	require.Equal(t, before, stats.BytesBefore)
	require.Equal(t, before-stats.BytesFreed, stats.BytesAfter)
	require.Equal(t, m.TotalAllocated(), stats.BytesAfter)

	require.True(t, pinned.IsObj())
	require.Equal(t, "kept", pinned.AsString().Value)

	m.UnpinObj(pinned)
}

// Invariant 2: a second collect_garbage with no intervening allocation
// reclaims nothing.
func TestCollectGarbageIdempotent(t *testing.T) {
	m := vm.NewVM()
	root := m.NewString("root")
	m.PinObj(root)
	for i := 0; i < 10; i++ {
		m.NewString("noise")
	}

	m.CollectGarbage()
	second := m.CollectGarbage()
	require.Equal(t, 0, second.ObjectsFreed)
	require.Equal(t, uintptr(0), second.BytesFreed)

	m.UnpinObj(root)
}

// Unpinning out of stack-discipline order is a fatal assertion. The
// mismatch check is by ValueType only (matching the source's own weak
// "do real equivalence check" TODO), so it can only be exercised with
// pins of differing types, not two pinned objects of the same type.
func TestUnpinOutOfOrderIsFatal(t *testing.T) {
	m := vm.NewVM()
	str := m.NewString("s")

	m.PinObj(str)
	m.PinObj(vm.NumVal(1))

	require.Panics(t, func() {
		m.UnpinObj(str)
	})
}

// Invariant 4: immediately after NewClass(super), every method slot in
// the subclass equals the superclass's corresponding slot.
func TestNewClassCopiesMethodSlots(t *testing.T) {
	m := vm.NewVM()
	super := m.NewClass(nil)

	sym := m.Methods().EnsureSymbol("greet")
	super.Methods[sym] = vm.Method{
		Type: vm.MethodPrimitive,
		Primitive: func(_ *vm.VM, _ *vm.Fiber, _ []vm.Value) vm.Value {
			return vm.NumVal(1)
		},
	}

	sub := m.NewClass(super)
	require.Equal(t, vm.MethodPrimitive, sub.Methods[sym].Type)

	// Overriding the subclass's slot afterward must not affect the
	// superclass's slot (flattened inheritance, not a chain walk).
	sub.Methods[sym] = vm.Method{Type: vm.MethodNone}
	require.Equal(t, vm.MethodPrimitive, super.Methods[sym].Type)
	require.Equal(t, vm.MethodNone, sub.Methods[sym].Type)
}
