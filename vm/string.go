package vm

// ObjString is a heap-owned byte sequence. Unlike the C source, which
// recovers length by scanning for a NUL terminator, this keeps an
// explicit length via Go's native string length — the spec calls this
// out as the preferred alternative ("specification permits an explicit
// length field — preferred").
type ObjString struct {
	objHeader
	Value string
}

func newObjString(text string) *ObjString {
	s := &ObjString{}
	s.Value = text
	return s
}
