// Code generated by hand. DO NOT EDIT.

package a

func generated() int {
	x := value()
	x = 2
	return x
}
