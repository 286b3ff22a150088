package main

// Equals reports structural equality. Atoms of different kinds are never equal,
// so the identifier a and the string "a" differ.
func Equals(v1, v2 Exp) bool {
	list1, isList1 := v1.(*List)
	list2, isList2 := v2.(*List)
	if isList1 && isList2 {
		return listEquals(list1, list2)
	}
	if isList1 || isList2 {
		return false
	}

	return v1 == v2
}

func listEquals(list1, list2 *List) bool {
	for list1 != nil && list2 != nil {
		if list1 == list2 {
			return true
		}
		if !Equals(list1.head, list2.head) {
			return false
		}
		list1, list2 = list1.tail, list2.tail
	}
	return list1 == nil && list2 == nil
}
