package codegen

import "testing"

func TestFormatNoopWhenPathEmpty(t *testing.T) {
	f := NewFormatter("")
	got, err := f.Format("object X {}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "object X {}" {
		t.Errorf("Format() = %q, want input unchanged", got)
	}
}

func TestFormatRunsConfiguredCommand(t *testing.T) {
	f := NewFormatter("cat")
	got, err := f.Format("object X {}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "object X {}" {
		t.Errorf("Format() via cat = %q, want %q", got, "object X {}")
	}
}

func TestFormatFallsBackToSourceOnFailure(t *testing.T) {
	f := NewFormatter("/no/such/formatter/binary")
	got, err := f.Format("object X {}")
	if err == nil {
		t.Fatal("expected an error for a nonexistent formatter binary")
	}
	if got != "object X {}" {
		t.Errorf("expected Format to fall back to the unformatted source, got %q", got)
	}
}
