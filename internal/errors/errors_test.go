package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty string", got)
	}

	err := fmt.Errorf("something broke")
	if got := Format(err); got != "Error: something broke" {
		t.Errorf("Format() = %q, want %q", got, "Error: something broke")
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %d not found", 3)
	want := "Error: habit 3 not found"
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}
