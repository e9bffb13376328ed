package model

import "strings"

// Command is a program invocation prepared from the config: an argv and the directory it runs in.
type Command struct {
	Args []string
	Dir  string
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}
