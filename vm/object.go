package vm

// ObjType tags the concrete kind of a heap object.
type ObjType uint8

const (
	ObjTypeClass ObjType = iota
	ObjTypeFn
	ObjTypeString
	ObjTypeInstance
)

// FlagMarked is the collector's mark bit, owned entirely by heap.go
// between mark and sweep.
const FlagMarked uint8 = 1 << 0

// Obj is the shared interface every heap-allocated object implements. It
// exposes exactly the header fields the collector needs: a type tag, the
// mark flags, and the intrusive singly-linked next pointer forming the
// VM's all-objects list.
type Obj interface {
	objType() ObjType
	header() *objHeader
}

// objHeader is the shared prefix every concrete object embeds. next
// forms the VM's singly-linked all-objects list (insertion at head;
// traversal during sweep).
type objHeader struct {
	typ   ObjType
	flags uint8
	next  Obj
}

func (h *objHeader) objType() ObjType   { return h.typ }
func (h *objHeader) header() *objHeader { return h }

func (h *objHeader) marked() bool { return h.flags&FlagMarked != 0 }
func (h *objHeader) setMarked()   { h.flags |= FlagMarked }
func (h *objHeader) clearMarked() { h.flags &^= FlagMarked }
