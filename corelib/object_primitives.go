package corelib

import "github.com/fermian/wren/vm"

// registerObjectPrimitives installs the methods every value understands
// regardless of its concrete class: identity comparison and the
// metaclass accessor's instance-side counterpart, `class`.
//
// Grounded on chazu-maggie/vm/object_primitives.go's registration
// style, reduced to what the engine's own opcodes and §8 test scenarios
// exercise (spec §1 puts the rest of a full core library's object
// protocol out of scope).
func registerObjectPrimitives(m *vm.VM) {
	methods := m.Methods()

	addPrimitive(m, m.ObjectClass, methods, "==", func(m *vm.VM, fiber *vm.Fiber, args []vm.Value) vm.Value {
		return vm.BoolVal(sameIdentity(args[0], args[1]))
	})

	addPrimitive(m, m.ObjectClass, methods, "class", func(m *vm.VM, fiber *vm.Fiber, args []vm.Value) vm.Value {
		return vm.ObjVal(classOf(m, args[0]))
	})
}

// classOf is a small instance-side wrapper around the engine's internal
// getClass — it's exported indirectly through the `class` primitive
// rather than the engine exposing getClass itself, since spec §4.A
// scopes get_class as the interpreter's own dispatch helper, not part
// of the public embedding API (§6).
func classOf(m *vm.VM, v vm.Value) *vm.ObjClass {
	switch {
	case v.IsBool():
		return m.BoolClass
	case v.IsNull():
		return m.NullClass
	case v.IsNum():
		return m.NumClass
	case v.IsObj():
		switch o := v.AsObj().(type) {
		case *vm.ObjClass:
			return o.Metaclass
		case *vm.ObjFn:
			return m.FnClass
		case *vm.ObjString:
			return m.StringClass
		case *vm.ObjInstance:
			return o.Class
		}
	}
	return m.NullClass
}

// sameIdentity reports whether a and b refer to the same object, or are
// the same immediate value (bool/null/number by value). There is no
// address equality exposed to the language beyond this (spec §5:
// "the language exposes no address equality"), so object identity is
// judged by comparing the two Go Obj pointers.
func sameIdentity(a, b vm.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	if a.IsObj() && b.IsObj() {
		return a.AsObj() == b.AsObj()
	}
	if a.IsNum() && b.IsNum() {
		return a.AsNum() == b.AsNum()
	}
	return true
}

func addPrimitive(m *vm.VM, class *vm.ObjClass, methods *vm.SymbolTable, name string, fn vm.PrimitiveFunc) {
	sym := methods.EnsureSymbol(name)
	class.Methods[sym] = vm.Method{Type: vm.MethodPrimitive, Primitive: fn}
}
