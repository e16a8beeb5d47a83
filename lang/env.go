package lang

import "iter"

// Env is a chain of name bindings searched from the most recent backward.
//
// Extending an environment never modifies it: [Env.Extend] returns a new
// environment sharing the existing chain. The only in-place operation is
// [Env.Define], used for bindings that outlive the block defining them.
// The zero value is an empty environment.
type Env struct {
	head *binding
}

type binding struct {
	value Value
	next  *binding
	name  string
}

// NewEnv returns an empty environment.
func NewEnv() *Env { return new(Env) }

// Extend returns a new environment with name bound to v.
func (e *Env) Extend(name string, v Value) *Env {
	return &Env{head: &binding{name: name, value: v, next: e.chain()}}
}

// Define binds name to v in e itself.
func (e *Env) Define(name string, v Value) {
	e.head = &binding{name: name, value: v, next: e.head}
}

// Lookup returns the most recent value bound to name.
func (e *Env) Lookup(name string) (Value, bool) {
	for b := e.chain(); b != nil; b = b.next {
		if b.name == name {
			return b.value, true
		}
	}

	return nil, false
}

// Names yields each bound name once, most recent first.
func (e *Env) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})

		for b := e.chain(); b != nil; b = b.next {
			if _, ok := seen[b.name]; ok {
				continue
			}

			seen[b.name] = struct{}{}

			if !yield(b.name) {
				return
			}
		}
	}
}

// Len returns the number of bindings, including shadowed ones.
func (e *Env) Len() int {
	n := 0
	for b := e.chain(); b != nil; b = b.next {
		n++
	}

	return n
}

// snapshot returns an environment that later calls to Define on e do not
// affect.
func (e *Env) snapshot() *Env { return &Env{head: e.chain()} }

func (e *Env) chain() *binding {
	if e == nil {
		return nil
	}

	return e.head
}
