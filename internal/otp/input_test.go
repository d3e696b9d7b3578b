package otp

import "testing"

func TestSetCellRejectsNonDigits(t *testing.T) {
	in := NewInput()
	in.SetCell(0, "5")

	for _, bad := range []string{"a", "!", " ", "x"} {
		in.SetCell(0, bad)
		if in.Cells()[0] != "5" {
			t.Fatalf("cell changed by non-digit %q: %q", bad, in.Cells()[0])
		}
	}
}

func TestSetCellAdvancesFocus(t *testing.T) {
	in := NewInput()
	for i := 0; i < CodeLength; i++ {
		in.SetCell(i, "1")
	}
	if in.Focus() != CodeLength-1 {
		t.Fatalf("expected focus on last cell, got %d", in.Focus())
	}
	if !in.Complete() {
		t.Fatalf("expected complete input")
	}
	if in.Code() != "111111" {
		t.Fatalf("unexpected code %q", in.Code())
	}
}

func TestSetCellKeepsLastTypedDigit(t *testing.T) {
	in := NewInput()
	in.SetCell(0, "12")
	if in.Cells()[0] != "2" {
		t.Fatalf("expected last typed digit kept, got %q", in.Cells()[0])
	}
}

func TestBackspace(t *testing.T) {
	in := NewInput()
	in.SetCell(0, "1")
	in.SetCell(1, "2")

	// Backspace on a filled cell clears it in place.
	in.Backspace(1)
	if in.Cells()[1] != "" || in.Focus() != 1 {
		t.Fatalf("expected cell 1 cleared with focus held, got %q focus %d", in.Cells()[1], in.Focus())
	}

	// Backspace on an empty cell moves focus back.
	in.Backspace(1)
	if in.Focus() != 0 {
		t.Fatalf("expected focus moved to 0, got %d", in.Focus())
	}

	// Backspace on a filled first cell clears it without moving focus.
	in.Backspace(0)
	if in.Cells()[0] != "" || in.Focus() != 0 {
		t.Fatalf("expected cell 0 cleared with focus 0, got %q focus %d", in.Cells()[0], in.Focus())
	}

	// Backspace on the first cell when empty stays put.
	in.Backspace(0)
	if in.Focus() != 0 {
		t.Fatalf("expected focus to stay on 0, got %d", in.Focus())
	}
}

func TestPasteFillsAllCells(t *testing.T) {
	in := NewInput()
	if !in.Paste("123456") {
		t.Fatalf("expected paste accepted")
	}
	want := [CodeLength]string{"1", "2", "3", "4", "5", "6"}
	if in.Cells() != want {
		t.Fatalf("unexpected cells %v", in.Cells())
	}
	if in.Focus() != CodeLength-1 {
		t.Fatalf("expected focus on last cell, got %d", in.Focus())
	}
}

func TestPasteExtractsDigitsFromNoise(t *testing.T) {
	in := NewInput()
	if !in.Paste("code: 9-8-7 6.5 4 (ignore 321)") {
		t.Fatalf("expected paste accepted")
	}
	if in.Code() != "987654" {
		t.Fatalf("unexpected code %q", in.Code())
	}
}

func TestPasteTooShortIgnored(t *testing.T) {
	in := NewInput()
	in.SetCell(0, "7")
	if in.Paste("12345") {
		t.Fatalf("expected short paste rejected")
	}
	if in.Cells()[0] != "7" {
		t.Fatalf("short paste must leave input untouched, got %q", in.Cells()[0])
	}
}

func TestClearResetsFocus(t *testing.T) {
	in := NewInput()
	in.Paste("123456")
	in.Clear()
	if in.Code() != "" || in.Focus() != 0 {
		t.Fatalf("expected empty input focused on first cell")
	}
}
