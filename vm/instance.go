package vm

// ObjInstance is a header plus a reference to its class. Fields are
// reserved for future extension (spec §9: "instances have no user
// fields yet").
type ObjInstance struct {
	objHeader
	Class *ObjClass
}

func newObjInstance(class *ObjClass) *ObjInstance {
	inst := &ObjInstance{}
	inst.Class = class
	return inst
}
