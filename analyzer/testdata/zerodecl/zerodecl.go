package zerodecl

func value() int { return 1 }

func zeroDecl() int {
	var x int // want "Dead store: value assigned to 'x' is never read"
	x = value()
	return x
}

func zeroDeclRead() int {
	var x int
	if value() > 0 {
		x = value()
	}
	return x
}

func grouped() (int, string) {
	var (
		n int    // want "Dead store: value assigned to 'n' is never read"
		s string // want "Dead store: value assigned to 's' is never read"
	)
	n, s = value(), "x"
	return n, s
}
