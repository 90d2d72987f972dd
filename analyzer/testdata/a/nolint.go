package a

func suppressedLine() int {
	x := value() //nolint:deadstore
	x = 2
	return x
}

func suppressedAll() int {
	x := value() //nolint:all
	x = 2
	return x
}

func otherLinter() int {
	x := value() //nolint:unused // want "Dead store: value assigned to 'x' is never read"
	x = 2
	return x
}

//nolint:deadstore
func suppressedFunc() int {
	x := value()
	x = 2
	return func() int {
		y := 1
		y = 2
		return y
	}() + x
}
