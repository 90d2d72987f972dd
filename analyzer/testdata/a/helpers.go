package a

import "errors"

var errFailed = errors.New("failed")

func value() int { return 1 }

func use(...any) {}

func cond() bool { return false }

type counter struct{ n int }

func (c *counter) inc() { c.n++ }
