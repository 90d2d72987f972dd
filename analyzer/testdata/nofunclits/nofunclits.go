package nofunclits

func value() int { return 1 }

func closure() func() int {
	return func() int {
		x := value()
		x = 2
		return x
	}
}

func outer() int {
	x := value() // want "Dead store: value assigned to 'x' is never read"
	x = 2
	return x
}
