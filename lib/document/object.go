// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

// Member is one key/value pair of an [Object].
type Member struct {
	Key   string
	Value Node
}

// Object is an ordered mapping from unique string keys to nodes. The
// zero value is an empty object ready to use. Object is not safe for
// concurrent mutation.
type Object struct {
	members []Member

	// positions maps each key to its index in members. Built lazily
	// so the zero value works.
	positions map[string]int
}

// NewObject returns an object holding members in order. A later
// member with the same key as an earlier one replaces the earlier
// value in place.
func NewObject(members ...Member) *Object {
	object := &Object{
		members:   make([]Member, 0, len(members)),
		positions: make(map[string]int, len(members)),
	}
	for _, member := range members {
		object.Set(member.Key, member.Value)
	}
	return object
}

// Set stores value under key. A new key is appended at the end; an
// existing key keeps its position and has its value replaced.
func (object *Object) Set(key string, value Node) {
	if object.positions == nil {
		object.positions = make(map[string]int)
	}
	if position, ok := object.positions[key]; ok {
		object.members[position].Value = value
		return
	}
	object.positions[key] = len(object.members)
	object.members = append(object.members, Member{Key: key, Value: value})
}

// Get returns the value stored under key and whether it was present.
func (object *Object) Get(key string) (Node, bool) {
	if object == nil {
		return nil, false
	}
	position, ok := object.positions[key]
	if !ok {
		return nil, false
	}
	return object.members[position].Value, true
}

// Has reports whether key is present.
func (object *Object) Has(key string) bool {
	_, ok := object.Get(key)
	return ok
}

// Delete removes key, preserving the relative order of the remaining
// members. Deleting a missing key, or from a nil object, is a no-op.
func (object *Object) Delete(key string) {
	if object == nil {
		return
	}
	position, ok := object.positions[key]
	if !ok {
		return
	}
	delete(object.positions, key)
	object.members = append(object.members[:position], object.members[position+1:]...)
	for index := position; index < len(object.members); index++ {
		object.positions[object.members[index].Key] = index
	}
}

// Len returns the number of members.
func (object *Object) Len() int {
	if object == nil {
		return 0
	}
	return len(object.members)
}

// Members returns the members in insertion order. The returned slice
// is a copy; modifying it does not affect the object.
func (object *Object) Members() []Member {
	if object == nil {
		return nil
	}
	result := make([]Member, len(object.members))
	copy(result, object.members)
	return result
}

// Keys returns the keys in insertion order.
func (object *Object) Keys() []string {
	if object == nil {
		return nil
	}
	keys := make([]string, len(object.members))
	for index, member := range object.members {
		keys[index] = member.Key
	}
	return keys
}

// Range calls visit for each member in insertion order, stopping
// early if visit returns false. It does not copy the member list,
// which makes it the preferred iteration path for the encoder.
func (object *Object) Range(visit func(key string, value Node) bool) {
	if object == nil {
		return
	}
	for _, member := range object.members {
		if !visit(member.Key, member.Value) {
			return
		}
	}
}
