package lisp

// NewRootEnv builds the root environment: the builtin operator library
// plus the nil/t constants. This is the single frame with no parent;
// PutGlobal from any nested scope walks back to exactly this frame.
func NewRootEnv() *Env {
	root := NewEnv(nil)
	registerArith(root)
	registerList(root)
	registerPred(root)
	registerApply(root)
	registerIO(root)
	registerExt(root)
	root.Put("nil", NewList())
	root.Put("t", NewBool(true))
	return root
}
