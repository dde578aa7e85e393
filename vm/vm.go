package vm

// VM is the process-wide singleton that owns every piece of mutable
// state the engine touches: the all-objects list, allocation
// accounting, the two symbol tables, the global-value table, the one
// fiber, and the pin stack. Spec §9 notes a systems-language port
// "should make VM an ordinary owned value, pass it explicitly, and
// never rely on globals" — which is exactly what this type is: there is
// no package-level *VM anywhere in this engine.
type VM struct {
	// All-objects list head, allocation accounting.
	first          Obj
	totalAllocated uintptr
	nextGC         uintptr
	gcStress       bool

	// Symbol tables: method selectors and global variable names.
	methods       *SymbolTable
	globalSymbols *SymbolTable
	globals       [MaxSymbols]Value

	fiber *Fiber

	pinned    [MaxPinned]Value
	numPinned int

	// Built-in class handles, populated by the bootstrap loader this
	// package's embedder calls after NewVM (spec §6: "on construction
	// the VM must call a core-loader").
	ObjectClass *ObjClass
	BoolClass   *ObjClass
	NullClass   *ObjClass
	NumClass    *ObjClass
	FnClass     *ObjClass
	StringClass *ObjClass
}

// Option configures a VM at construction time. Grounded on
// db47h-ngaro/vm/vm.go's `type Option func(*Instance) error` — the only
// functional-options precedent in the example corpus.
type Option func(*VM)

// WithInitialGCThreshold overrides the default 1 MiB nextGC starting
// threshold.
func WithInitialGCThreshold(bytes uintptr) Option {
	return func(vm *VM) { vm.nextGC = bytes }
}

// WithGCStress puts the VM into debug GC-stress mode: every allocation
// triggers a collection. Mechanical Go stand-in for the source's
// #ifdef DEBUG_GC_STRESS compile-time macro (Go has no preprocessor).
func WithGCStress() Option {
	return func(vm *VM) { vm.gcStress = true }
}

// NewVM constructs a VM with empty symbol tables, one fiber, and
// default GC tuning. It does not bootstrap the built-in classes or
// install any primitives — that is the embedder-supplied core loader's
// job (spec §1: core-library bootstrap is an external collaborator).
func NewVM(opts ...Option) *VM {
	vm := &VM{
		methods:       NewSymbolTable(),
		globalSymbols: NewSymbolTable(),
		fiber:         newFiber(),
		nextGC:        initialNextGC,
	}
	for i := range vm.globals {
		vm.globals[i] = NullVal
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Methods exposes the method-selector symbol table.
func (vm *VM) Methods() *SymbolTable { return vm.methods }

// GlobalSymbols exposes the global-name symbol table.
func (vm *VM) GlobalSymbols() *SymbolTable { return vm.globalSymbols }

// TotalAllocated returns the current accounted live-byte count.
func (vm *VM) TotalAllocated() uintptr { return vm.totalAllocated }

// NumPinned returns the current pin-stack depth, mainly useful for
// tests asserting pin/unpin discipline.
func (vm *VM) NumPinned() int { return vm.numPinned }

// DefineGlobal binds value to the global variable named name, adding
// the symbol if it doesn't already exist.
func (vm *VM) DefineGlobal(name string, value Value) int {
	id := vm.globalSymbols.EnsureSymbol(name)
	vm.globals[id] = value
	return id
}

// FindGlobal looks up name in the global symbol table and returns its
// bound value. Resolves the source's `// TODO(bob): Handle failure.` —
// a miss here is a defined (false, zero Value) rather than an
// out-of-bounds array read, since Go has no equivalent undefined
// behavior to fall back on (SPEC_FULL.md §4).
func (vm *VM) FindGlobal(name string) (Value, bool) {
	id := vm.globalSymbols.FindSymbol(name)
	if id == -1 {
		return Value{}, false
	}
	return vm.globals[id], true
}

// getClass returns the class of any value: boolean -> BoolClass,
// null/no-value -> NullClass, number -> NumClass, object -> switch on
// object type (functions -> FnClass, strings -> StringClass, instances
// -> their own class, classes -> their metaclass). This is the only
// place the built-in class handles are consulted for dispatch (spec
// §4.A).
func (vm *VM) getClass(value Value) *ObjClass {
	switch value.typ {
	case ValFalse, ValTrue:
		return vm.BoolClass
	case ValNull:
		return vm.NullClass
	case ValNum:
		return vm.NumClass
	case ValNoValue:
		// Hack inherited verbatim from the source: no-value values
		// should never be dispatched on, but getClass must return
		// something.
		return vm.NullClass
	case ValObj:
		switch o := value.obj.(type) {
		case *ObjClass:
			return o.Metaclass
		case *ObjFn:
			return vm.FnClass
		case *ObjString:
			return vm.StringClass
		case *ObjInstance:
			return o.Class
		default:
			// Spec §9: "the get_class switch does not handle an
			// unknown VAL_OBJ subtype; behavior is undefined if new
			// object types are added without updating it." This panic
			// is the loud version of that undefined behavior rather
			// than a silent fix.
			fatalf("getClass: unhandled object type %T", o)
		}
	}
	fatalf("getClass: unhandled value type %d", value.typ)
	return nil
}

// FormatValue renders value the way print_value does: false/true/null,
// %g for numbers, strings by content, and [class ADDR]/[fn ADDR]/
// [instance ADDR] for the remaining object kinds, using Go's %p to
// stand in for the source's raw pointer-as-address format (spec §6,
// SPEC_FULL.md §4).
func FormatValue(value Value) string {
	switch value.typ {
	case ValFalse:
		return "false"
	case ValNull:
		return "null"
	case ValNum:
		return formatNum(value.num)
	case ValTrue:
		return "true"
	case ValNoValue:
		return "novalue"
	case ValObj:
		switch o := value.obj.(type) {
		case *ObjClass:
			return formatPtr("class", o)
		case *ObjFn:
			return formatPtr("fn", o)
		case *ObjInstance:
			return formatPtr("instance", o)
		case *ObjString:
			return o.Value
		}
	}
	return "?"
}
