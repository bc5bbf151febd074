// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

// Equal reports whether a and b are structurally equal: same kinds,
// same scalar values, same array elements in order, and same object
// members in the same order. nil and [Null] are equal.
func Equal(a, b Node) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}

	switch left := a.(type) {
	case nil, Null:
		return true

	case String:
		return left == b.(String)

	case Bool:
		return left == b.(Bool)

	case Array:
		right := b.(Array)
		if len(left) != len(right) {
			return false
		}
		for index := range left {
			if !Equal(left[index], right[index]) {
				return false
			}
		}
		return true

	case *Object:
		right := b.(*Object)
		if left.Len() != right.Len() {
			return false
		}
		for index := range left.Len() {
			leftMember := left.members[index]
			rightMember := right.members[index]
			if leftMember.Key != rightMember.Key {
				return false
			}
			if !Equal(leftMember.Value, rightMember.Value) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
