package lisp

// Env is a scoped environment mapping symbol names to values. Lookup walks
// outward through parent frames. A child frame is created on function entry
// and at the start of let/do/dolist/dotimes; it survives as long as a Lambda
// captured it or the form is still active, whichever is longer.
type Env struct {
	scope  map[string]*Value
	parent *Env

	// output and input are only ever set on the root frame; child frames
	// reach them through root().
	output *[]string
	input  func() (string, bool)
}

// NewEnv creates a new environment with an optional parent scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		scope:  make(map[string]*Value),
		parent: parent,
	}
}

// SetIO installs the output buffer and line-input callback on env's root
// frame. Builtins reach both through the env they were called with,
// regardless of how deeply nested that call frame is.
func (env *Env) SetIO(output *[]string, input func() (string, bool)) {
	root := env.root()
	root.output = output
	root.input = input
}

// Emit appends line to the output buffer, one entry per print/prin1/format
// call.
func (env *Env) Emit(line string) {
	root := env.root()
	if root.output == nil {
		return
	}
	*root.output = append(*root.output, line)
}

// ReadLine invokes the host-supplied line-input callback. ok is false if
// no provider was configured.
func (env *Env) ReadLine() (string, bool) {
	root := env.root()
	if root.input == nil {
		return "", false
	}
	return root.input()
}

// Child creates a new child scope whose parent is env.
func (env *Env) Child() *Env {
	return NewEnv(env)
}

// Get looks up name, walking outward through parent frames.
func (env *Env) Get(name string) (*Value, bool) {
	if v, ok := env.scope[name]; ok {
		return v, true
	}
	if env.parent != nil {
		return env.parent.Get(name)
	}
	return nil, false
}

// Put binds name to v in this frame only.
func (env *Env) Put(name string, v *Value) {
	env.scope[name] = v
}

// PutGlobal binds name to v in the root frame. defun, setq, and
// setf-on-symbol mirror their writes here so that lambdas captured in
// nested frames can call globals introduced mid-execution.
func (env *Env) PutGlobal(name string, v *Value) {
	env.root().Put(name, v)
}

func (env *Env) root() *Env {
	for env.parent != nil {
		env = env.parent
	}
	return env
}
