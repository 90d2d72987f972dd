package a

func overwrite() {
	x := value() // want "Dead store: value assigned to 'x' is never read"
	x = value()
	use(x)
}

func lastWrite(x int) {
	use(x)
	x = 2 // want "Dead store: value assigned to 'x' is never read"
}

func compound() int {
	x := 0
	x += value()
	x++
	return x
}

func selfReference(x int) {
	x = x + 1
}

func multi() int {
	a, b := value(), value() // want "Dead store: value assigned to 'b' is never read"
	b = 3
	return a + b
}

func varInit() int {
	var x = value() // want "Dead store: value assigned to 'x' is never read"
	x = 2
	return x
}

func zeroDecl() int {
	var x int
	x = value()
	return x
}

func rangeValue(xs []int) int {
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return sum
}

func unreachable() int {
	x := 1
	return x
	x = 2
	return x
}
