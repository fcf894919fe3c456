// Package props provides the ordered property bag used for extension data
// throughout an RtsProfile.
package props

// Bag is an ordered mapping of property name to optional value.
//
// Iteration order is insertion order; re-setting an existing key keeps its
// original position. An empty value means the property has no value.
// The zero Bag is empty and ready to use. Assigning a Bag shares its
// storage; use Clone for an independent copy.
type Bag struct {
	keys   []string
	values map[string]string
}

// New returns a Bag holding the given name/value pairs, in order.
// A trailing name without a value is added with no value.
func New(pairs ...string) Bag {
	var b Bag
	for i := 0; i < len(pairs); i += 2 {
		var v string
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		b.Set(pairs[i], v)
	}
	return b
}

// Set adds or replaces the property name.
func (b *Bag) Set(name, value string) {
	if b.values == nil {
		b.values = map[string]string{}
	}
	if _, ok := b.values[name]; !ok {
		b.keys = append(b.keys, name)
	}
	b.values[name] = value
}

// Get returns the value of the property name, and whether it is present.
func (b Bag) Get(name string) (string, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has returns true if the property name is present.
func (b Bag) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Delete removes the property name, if present.
func (b *Bag) Delete(name string) {
	if _, ok := b.values[name]; !ok {
		return
	}
	delete(b.values, name)
	keys := make([]string, 0, len(b.keys)-1)
	for _, k := range b.keys {
		if k != name {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		*b = Bag{}
		return
	}
	b.keys = keys
}

// Len returns the number of properties.
func (b Bag) Len() int { return len(b.keys) }

// Names returns the property names in insertion order.
func (b Bag) Names() []string {
	if len(b.keys) == 0 {
		return nil
	}
	return append([]string(nil), b.keys...)
}

// Range calls fn for each property in insertion order, stopping early if
// fn returns false.
func (b Bag) Range(fn func(name, value string) bool) {
	for _, k := range b.keys {
		if !fn(k, b.values[k]) {
			return
		}
	}
}

// Clone returns an independent copy of b.
func (b Bag) Clone() Bag {
	var c Bag
	b.Range(func(name, value string) bool {
		c.Set(name, value)
		return true
	})
	return c
}

// Equal returns true if b and o hold the same properties in the same order.
func (b Bag) Equal(o Bag) bool {
	if len(b.keys) != len(o.keys) {
		return false
	}
	for i, k := range b.keys {
		if o.keys[i] != k || o.values[k] != b.values[k] {
			return false
		}
	}
	return true
}
