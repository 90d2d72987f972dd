//nolint:deadstore
package a

func suppressedFile() int {
	x := value()
	x = 2
	return x
}
