// file: internals/helpers/dbtime/tod_test.go
package dbtime

import (
	"testing"
	"time"
)

func TestParseAndHHMM(t *testing.T) {
	for _, s := range []string{"09:00", "13:45", "00:00", "23:59"} {
		tod, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got := tod.HHMM(); got != s {
			t.Errorf("HHMM roundtrip %q → %q", s, got)
		}
	}

	if _, err := Parse("25:00"); err == nil {
		t.Error("Parse(25:00) should fail")
	}
	if _, err := Parse("9am"); err == nil {
		t.Error("Parse(9am) should fail")
	}
}

func TestScanVariants(t *testing.T) {
	var tod Tod
	if err := tod.Scan("14:30:15"); err != nil || tod.Format("15:04:05") != "14:30:15" {
		t.Errorf("Scan string: %v, got %s", err, tod.Format("15:04:05"))
	}
	if err := tod.Scan([]byte("08:05")); err != nil || tod.HHMM() != "08:05" {
		t.Errorf("Scan bytes: %v, got %s", err, tod.HHMM())
	}
	if err := tod.Scan(time.Date(2025, 10, 1, 16, 0, 0, 0, time.UTC)); err != nil || tod.HHMM() != "16:00" {
		t.Errorf("Scan time: %v, got %s", err, tod.HHMM())
	}
	if err := tod.Scan(nil); err != nil || !tod.Time.IsZero() {
		t.Errorf("Scan nil should zero the value: %v", err)
	}
	if err := tod.Scan(42); err == nil {
		t.Error("Scan int should fail")
	}
}

func TestValue(t *testing.T) {
	tod, _ := Parse("09:30")
	v, err := tod.Value()
	if err != nil || v != "09:30:00" {
		t.Errorf("Value() = %v (%v), want 09:30:00", v, err)
	}

	var zero Tod
	v, err = zero.Value()
	if err != nil || v != "00:00:00" {
		t.Errorf("zero Value() = %v (%v), want 00:00:00", v, err)
	}
}

func TestJSONRoundtrip(t *testing.T) {
	tod, _ := Parse("13:45")
	b, err := tod.MarshalJSON()
	if err != nil || string(b) != `"13:45:00"` {
		t.Fatalf("MarshalJSON = %s (%v)", b, err)
	}

	var back Tod
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back.HHMM() != "13:45" {
		t.Errorf("roundtrip = %s, want 13:45", back.HHMM())
	}
}
