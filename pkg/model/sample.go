package model

import (
	"io"
	"unicode/utf8"
)

type Sample struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

func NewSample(name, input, output string) Sample {
	return Sample{Name: name, Input: input, Output: output}
}

// SampleSource yields samples one at a time. Next returns io.EOF once exhausted.
type SampleSource interface {
	Len() int
	MaxNameLen() int
	Next() (Sample, error)
}

// SampleIter iterates over samples held in memory.
type SampleIter struct {
	samples    []Sample
	pos        int
	maxNameLen int
}

func NewSampleIter(samples []Sample) *SampleIter {
	maxNameLen := 0
	for _, s := range samples {
		if n := utf8.RuneCountInString(s.Name); n > maxNameLen {
			maxNameLen = n
		}
	}
	return &SampleIter{samples: samples, maxNameLen: maxNameLen}
}

func (it *SampleIter) Len() int {
	return len(it.samples)
}

func (it *SampleIter) MaxNameLen() int {
	return it.maxNameLen
}

func (it *SampleIter) Next() (Sample, error) {
	if it.pos >= len(it.samples) {
		return Sample{}, io.EOF
	}
	s := it.samples[it.pos]
	it.pos++
	return s, nil
}
