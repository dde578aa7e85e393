package vm

import "fmt"

// MaxPinned bounds the pin stack.
const MaxPinned = 256

// initialNextGC is the threshold before the first collection runs.
const initialNextGC = 1024 * 1024

// objSize returns the accounted byte size for obj, matching the
// per-type formulas freeObj used in the source (header plus owned
// buffers). It has no relationship to Go's actual allocator; it exists
// purely so totalAllocated/nextGC behave the way spec §4.B describes.
func objSize(obj Obj) uintptr {
	switch o := obj.(type) {
	case *ObjString:
		return unsafeHeaderSize + uintptr(len(o.Value)) + 1
	case *ObjFn:
		// Nominal size matches the source's fixed 1024-byte bytecode
		// buffer / 256-constant pool rather than this port's actual
		// (growable) Go slice capacities. Growable slices mean cap(...)
		// changes as WriteOp/AddConstant append to them; accounting
		// against that mutable quantity would make totalAllocated grow
		// silently over a function's lifetime and then overshoot on
		// free at sweep time, violating the "never decremented without
		// a corresponding allocation" contract. A fixed nominal size
		// keeps the accounting stable from allocation to sweep.
		return unsafeHeaderSize + maxBytecodeSize + maxConstants*valueSize
	case *ObjClass:
		return unsafeHeaderSize + MaxSymbols*methodSize
	case *ObjInstance:
		return unsafeHeaderSize
	default:
		panic(fmt.Sprintf("objSize: unknown object type %T", obj))
	}
}

// These are nominal sizes (not computed via unsafe.Sizeof) so the
// accounting stays stable regardless of struct padding — the collector
// only needs a monotonically meaningful notion of "bytes live", not a
// byte-exact match with any real allocator.
const (
	unsafeHeaderSize uintptr = 16
	valueSize        uintptr = 24
	methodSize       uintptr = 32

	// Nominal ObjFn buffer sizes, matching the source's fixed-size
	// bytecode/constant buffers (spec §3) rather than this port's
	// actual growable slice capacities.
	maxBytecodeSize uintptr = 1024
	maxConstants    uintptr = 256
)

// GCStats reports what a single collect_garbage call did. The source
// only ever surfaced this via #ifdef TRACE_MEMORY printf calls; this
// returns it as data instead (grounded on registry_gc.go's
// RegistryGCStats sweep-returns-stats shape), which is strictly more
// useful to an embedder than a debug print trail.
type GCStats struct {
	ObjectsFreed int
	BytesFreed   uintptr
	BytesBefore  uintptr
	BytesAfter   uintptr
}

// allocate accounts size bytes against totalAllocated and, unless size
// accounting is still below nextGC (and debug-stress mode is off), may
// trigger a collection before the caller links in the new object.
// Mirrors the source's allocate(): account first, then decide whether
// to collect.
func (vm *VM) allocate(size uintptr) {
	vm.totalAllocated += size

	if vm.gcStress {
		vm.collectGarbage()
		return
	}

	if vm.totalAllocated > vm.nextGC {
		vm.collectGarbage()
		vm.nextGC = vm.totalAllocated * 3 / 2
	}
}

// initObj links obj into the all-objects list (insertion at head),
// clears its flags, and stamps its type. Must run after allocate for
// the object itself but the object must already be protected (pinned,
// on the stack, or otherwise reachable) if further allocations happen
// before it's linked in — see NewClass below, which pins its metaclass
// across the class's own allocate call.
func (vm *VM) initObj(obj Obj, typ ObjType) {
	h := obj.header()
	h.typ = typ
	h.flags = 0
	h.next = vm.first
	vm.first = obj
}

// PinObj pushes value onto the pin stack, a LIFO scoped root extension
// used while constructing a compound object across multiple allocate
// calls. Fatal (panics) if the pin stack overflows.
func (vm *VM) PinObj(value Value) {
	if vm.numPinned >= MaxPinned-1 {
		fatalf("PinObj: too many pinned objects")
	}
	vm.pinned[vm.numPinned] = value
	vm.numPinned++
}

// UnpinObj pops the pin stack. The unpin must match the most recent pin
// (stack discipline); a mismatched unpin is a fatal error. Matching is
// by value type only, reproducing the source's "do real equivalence
// check" TODO rather than silently upgrading it to full identity.
func (vm *VM) UnpinObj(value Value) {
	if vm.numPinned == 0 {
		fatalf("UnpinObj: pin stack is empty")
	}
	top := vm.pinned[vm.numPinned-1]
	if top.typ != value.typ {
		fatalf("UnpinObj: unpinning object out of stack order")
	}
	vm.numPinned--
}

// NewClass implements new_class(vm, superclass) from spec §4.C:
//  1. create the metaclass (metaclass=nil, superclass=nil)
//  2. pin it
//  3. create the class (metaclass=that, superclass=superclass)
//  4. unpin the metaclass
//  5. if superclass is non-nil, copy all method slots from superclass
//
// The pin/unpin bracket protects the metaclass across the second
// allocate call, which may itself trigger a collection — the metaclass
// is not yet reachable from anywhere else at that point.
func (vm *VM) NewClass(superclass *ObjClass) *ObjClass {
	metaclass := newSingleClass(nil, nil)
	vm.allocate(objSize(metaclass))
	vm.initObj(metaclass, ObjTypeClass)

	vm.PinObj(ObjVal(metaclass))
	class := newSingleClass(metaclass, superclass)
	vm.allocate(objSize(class))
	vm.initObj(class, ObjTypeClass)
	vm.UnpinObj(ObjVal(metaclass))

	// Inheritance by flattening: the subclass method table starts as a
	// copy of the superclass's. A later CODE_METHOD overwriting a slot
	// affects the subclass alone; no dynamic superclass traversal ever
	// happens at dispatch time (spec §4.C, §9 BETA-style note).
	if superclass != nil {
		class.Methods = superclass.Methods
	}

	return class
}

// NewFunction allocates an ObjFn with empty bytecode/constants buffers,
// ready for a compiler to fill in.
func (vm *VM) NewFunction() *ObjFn {
	fn := newObjFn()
	vm.allocate(objSize(fn))
	vm.initObj(fn, ObjTypeFn)
	return fn
}

// NewInstance allocates an instance of class.
func (vm *VM) NewInstance(class *ObjClass) Value {
	inst := newObjInstance(class)
	vm.allocate(objSize(inst))
	vm.initObj(inst, ObjTypeInstance)
	return ObjVal(inst)
}

// NewString allocates a string object holding a copy of text.
func (vm *VM) NewString(text string) Value {
	s := newObjString(text)
	vm.allocate(objSize(s))
	vm.initObj(s, ObjTypeString)
	return ObjVal(s)
}

// markValue marks value's object if it holds one; no-op for non-object
// values.
func (vm *VM) markValue(value Value) {
	if !value.IsObj() {
		return
	}
	vm.markObj(value.obj)
}

// markObj marks obj and recurses into the references it owns. Marking
// is idempotent via the MARKED flag, which also guards against cycles
// (classes<->metaclasses, functions<->constants that reference
// classes).
func (vm *VM) markObj(obj Obj) {
	h := obj.header()
	if h.marked() {
		return
	}
	h.setMarked()

	switch o := obj.(type) {
	case *ObjClass:
		// Mark the metaclass. superclass is deliberately NOT marked —
		// spec §9 flags this as a possible bug in the source (a class
		// reachable only through a subclass's Superclass pointer can
		// be swept) and explicitly says not to silently fix it.
		if o.Metaclass != nil {
			vm.markObj(o.Metaclass)
		}
		for i := range o.Methods {
			if o.Methods[i].Type == MethodBlock && o.Methods[i].Fn != nil {
				vm.markObj(o.Methods[i].Fn)
			}
		}

	case *ObjFn:
		for _, c := range o.Constants {
			vm.markValue(c)
		}

	case *ObjInstance:
		// No fields to mark yet (spec §3: "reserved for future
		// extension").

	case *ObjString:
		// No outgoing references.
	}
}

// collectGarbage runs a full mark-and-sweep and returns stats on what
// it reclaimed.
func (vm *VM) collectGarbage() GCStats {
	before := vm.totalAllocated

	// Roots, in the order the source enumerates them.
	for i := 0; i < vm.globalSymbols.Len(); i++ {
		if !vm.globals[i].IsNull() {
			vm.markValue(vm.globals[i])
		}
	}
	for j := 0; j < vm.numPinned; j++ {
		if !vm.pinned[j].IsNull() {
			vm.markValue(vm.pinned[j])
		}
	}
	for k := 0; k < vm.fiber.numFrames; k++ {
		vm.markObj(vm.fiber.frames[k].fn)
	}
	for l := 0; l < vm.fiber.stackSize; l++ {
		vm.markValue(vm.fiber.stack[l])
	}

	// Sweep: walk the all-objects list, freeing unmarked objects and
	// clearing the mark on survivors (so the next collection starts
	// from a clean slate).
	freed := 0
	var freedBytes uintptr
	objp := &vm.first
	for *objp != nil {
		obj := *objp
		h := obj.header()
		if !h.marked() {
			*objp = h.next
			size := objSize(obj)
			vm.totalAllocated -= size
			freedBytes += size
			freed++
		} else {
			h.clearMarked()
			objp = &h.next
		}
	}

	return GCStats{
		ObjectsFreed: freed,
		BytesFreed:   freedBytes,
		BytesBefore:  before,
		BytesAfter:   vm.totalAllocated,
	}
}

// CollectGarbage is the embedding-facing entry point for
// collect_garbage(vm).
func (vm *VM) CollectGarbage() GCStats {
	return vm.collectGarbage()
}
