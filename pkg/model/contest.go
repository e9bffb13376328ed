package model

import (
	"strings"

	"github.com/mini-maxit/acick/pkg/constants"
)

var contestIDReplacer = strings.NewReplacer("-", "", "_", "")

// ContestID identifies a contest. Two ids are the same contest when their
// normalized forms (lowercase, without '-' and '_') are equal.
type ContestID string

func (c ContestID) Normalize() string {
	return strings.ToLower(contestIDReplacer.Replace(string(c)))
}

func (c ContestID) Equal(other ContestID) bool {
	return c.Normalize() == other.Normalize()
}

func (c ContestID) Less(other ContestID) bool {
	return c.Normalize() < other.Normalize()
}

func (c ContestID) String() string {
	return string(c)
}

type Contest struct {
	ID   ContestID `yaml:"id" json:"id"`
	Name string    `yaml:"name" json:"name"`
}

func NewContest(id ContestID, name string) Contest {
	return Contest{ID: id, Name: name}
}

func DefaultContest() Contest {
	return NewContest(constants.DefaultContestID, "AtCoder Regular Contest 100")
}
