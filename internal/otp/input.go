// Package otp models the one-time-passcode step of the login flow: the
// six-cell code entry widget and the challenge countdown issued alongside it.
package otp

import "strings"

// CodeLength is the number of digits in an emailed passcode.
const CodeLength = 6

// Input is the six-cell code entry model. It is the authoritative copy of the
// widget state: cell contents and the focused cell index. Handlers feed it the
// submitted values and templates render cells and autofocus from it.
type Input struct {
	cells [CodeLength]string
	focus int
}

// NewInput returns an empty input focused on the first cell.
func NewInput() *Input {
	return &Input{}
}

// SetCell records the value typed into cell i. Non-digit input is rejected and
// the cell keeps its previous value. Entering a digit advances focus to the
// next cell; an empty value clears the cell.
func (in *Input) SetCell(i int, value string) {
	if i < 0 || i >= CodeLength {
		return
	}
	if value == "" {
		in.cells[i] = ""
		return
	}
	if len(value) > 1 {
		value = value[len(value)-1:]
	}
	if value[0] < '0' || value[0] > '9' {
		return
	}
	in.cells[i] = value
	if i < CodeLength-1 {
		in.focus = i + 1
	} else {
		in.focus = i
	}
}

// Backspace handles a delete keystroke in cell i: a filled cell is cleared in
// place, while backspacing an empty cell moves focus to the previous cell.
func (in *Input) Backspace(i int) {
	if i < 0 || i >= CodeLength {
		return
	}
	if in.cells[i] == "" {
		if i > 0 {
			in.focus = i - 1
		}
		return
	}
	in.cells[i] = ""
	in.focus = i
}

// Paste fills all six cells from pasted text containing at least six digits,
// leaving focus on the last cell. Shorter pastes are ignored and the input is
// left untouched.
func (in *Input) Paste(text string) bool {
	var digits []string
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, string(r))
			if len(digits) == CodeLength {
				break
			}
		}
	}
	if len(digits) < CodeLength {
		return false
	}
	for i, d := range digits {
		in.cells[i] = d
	}
	in.focus = CodeLength - 1
	return true
}

// Code returns the concatenated cell contents.
func (in *Input) Code() string {
	return strings.Join(in.cells[:], "")
}

// Complete reports whether all six cells hold a digit.
func (in *Input) Complete() bool {
	for _, c := range in.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// Clear empties every cell and returns focus to the first one.
func (in *Input) Clear() {
	in.cells = [CodeLength]string{}
	in.focus = 0
}

// Focus returns the index of the cell that should receive input next.
func (in *Input) Focus() int {
	return in.focus
}

// Cells returns the current cell contents for rendering.
func (in *Input) Cells() [CodeLength]string {
	return in.cells
}
