package session

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

type Selectable interface {
	Selector() string
}

// selector is a numbered menu laid out in columns, filled top to bottom.
type selector[T Selectable] struct {
	options []T
	output  []string
}

func newSelector[T Selectable](options []T) *selector[T] {
	s := &selector[T]{options: options}
	s.build()
	return s
}

func (s *selector[T]) Prompt(t *Terminal, prompt string) (T, error) {
	var zero T

	var b strings.Builder
	b.WriteString(prompt + "\n")
	for _, str := range s.output {
		if len(str) > 0 {
			b.WriteString(str + "\n")
		}
	}
	if _, err := t.Write([]byte(b.String())); err != nil {
		return zero, err
	}

	selection, err := t.Prompt("Make your selection: ", WithValidator(
		func(str string) (bool, string) {
			if _, ok := s.Select(str); !ok {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return zero, err
	}

	v, _ := s.Select(selection)
	return v, nil
}

// Select accepts either an option number or an option's label.
func (s *selector[T]) Select(str string) (T, bool) {
	var zero T

	if i, err := strconv.Atoi(str); err == nil {
		if i < 1 || i > len(s.options) {
			return zero, false
		}
		return s.options[i-1], true
	}

	for _, o := range s.options {
		if str != "" && strings.EqualFold(o.Selector(), str) {
			return o, true
		}
	}
	return zero, false
}

func (s *selector[T]) build() {
	// Calculate column width
	colWidth := 1
	for _, v := range s.options {
		l := len(v.Selector()) + 7 // Plus 7 for number and spacing (nn. <val>  )
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, adding rows past the default
	// when there isn't enough horizontal space.
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max((len(s.options)+numCols-1)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-7, v.Selector())
	}
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}

	s.output = rows
}
