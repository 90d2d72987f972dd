package a

func namedResult() (n int, err error) {
	n = value()
	if n > 0 {
		err = errFailed
		return
	}
	return 0, nil
}

func namedOverwritten() (n int) {
	n = value() // want "Dead store: value assigned to 'n' is never read"
	return 2
}

func deferred() (err error) {
	defer func() { use(err) }()
	err = errFailed
	return nil
}

func recovered() (n int) {
	defer func() { _ = recover() }()
	n = 1
	n = value()
	return
}

func addressed() int {
	x := 0
	p := &x
	x = 1
	return *p
}

func pointerReceiver() int {
	c := counter{}
	c.inc()
	n := c.n
	c = counter{n: 2}
	return n
}

func field() int {
	var s struct{ a int }
	s.a = 1
	return s.a
}

func closure() func() int {
	return func() int {
		x := value() // want "Dead store: value assigned to 'x' is never read"
		x = 2
		return x
	}
}

func captured() int {
	x := 0
	f := func() int { return x }
	x = value()
	return f()
}
