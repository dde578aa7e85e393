// Package corelib implements the core-library bootstrap (loadCore in
// the original source): it creates the six built-in classes and
// installs primitive methods on them. Spec §1 names this an external
// collaborator out of the core engine's own scope; this package is
// that collaborator, grounded file-for-file on
// chazu-maggie/vm/*_primitives.go's one-file-per-class organization.
package corelib

import "github.com/fermian/wren/vm"

// Load bootstraps vm's built-in classes and registers their primitive
// methods, in the order spec §6 requires: Object first (so the "first
// class created is Object" heuristic in CODE_CLASS/CODE_SUBCLASS seeds
// vm.ObjectClass correctly), then the rest.
//
// This does not use CODE_CLASS/CODE_SUBCLASS bytecode to create these
// classes — it calls vm.NewClass directly, since the bootstrap loader
// runs before any bytecode exists to interpret. It reproduces the same
// "install a metaclass-side new primitive" step CODE_CLASS performs,
// because that step is what makes `SomeBuiltinClass new` work from
// interpreted code later.
func Load(m *vm.VM) {
	m.ObjectClass = m.NewClass(nil)
	installNew(m, m.ObjectClass)
	// Object's primitives go in before any subclass exists, since
	// NewClass copies the superclass's method slots at creation time.
	registerObjectPrimitives(m)

	m.BoolClass = m.NewClass(m.ObjectClass)
	installNew(m, m.BoolClass)

	m.NullClass = m.NewClass(m.ObjectClass)
	installNew(m, m.NullClass)

	m.NumClass = m.NewClass(m.ObjectClass)
	installNew(m, m.NumClass)

	m.FnClass = m.NewClass(m.ObjectClass)
	installNew(m, m.FnClass)

	m.StringClass = m.NewClass(m.ObjectClass)
	installNew(m, m.StringClass)

	registerBooleanPrimitives(m)
	registerNumberPrimitives(m)
	registerStringPrimitives(m)
}

// installNew mirrors the metaclass-side `new` installation
// CODE_CLASS/CODE_SUBCLASS perform in the interpreter, so bootstrap
// classes behave identically to bytecode-created ones. It installs the
// same vm.DefaultNewPrimitive the interpreter installs on bytecode-
// created classes, rather than a second copy of it, so the two paths
// can never drift apart.
func installNew(m *vm.VM, class *vm.ObjClass) {
	sym := m.Methods().EnsureSymbol("new")
	class.Metaclass.Methods[sym] = vm.Method{
		Type:      vm.MethodPrimitive,
		Primitive: vm.DefaultNewPrimitive,
	}
}
