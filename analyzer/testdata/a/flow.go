package a

func branches(x int) int {
	y := 0 // want "Dead store: value assigned to 'y' is never read"
	if cond() {
		y = x
	} else {
		y = 2
	}
	return y
}

func onePath(x int) int {
	y := 0
	if cond() {
		y = x
	}
	return y
}

func loop(n int) int {
	sum, last := 0, 0
	use(last)
	for i := range n {
		last = i // want "Dead store: value assigned to 'last' is never read"
		sum += i
	}
	return sum
}

func doWhile(x int) {
	a := x + 1
	for {
		use(a)
		if !cond() {
			break
		}
	}
	a = 0 // want "Dead store: value assigned to 'a' is never read"
}

func switchCase(k int) string {
	s := "none" // want "Dead store: value assigned to 's' is never read"
	switch k {
	case 1:
		s = "one"
	default:
		s = "many"
	}
	return s
}

func gotoLoop() {
	i := 0
loop:
	use(i)
	i++
	if i < 3 {
		goto loop
	}
}

func panics(x int) {
	y := x
	if cond() {
		y = 2 // want "Dead store: value assigned to 'y' is never read"
		panic("stop")
	}
	use(y)
}

func selectRecv(ch chan int) int {
	x := 0
	select {
	case x = <-ch:
	default:
	}
	return x
}
