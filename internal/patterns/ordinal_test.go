package patterns

import "testing"

func TestOrdinalSelection(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		msg    string
		want   int
		wantOK bool
	}{
		{"2", 2, true},
		{"2.", 2, true},
		{"#3", 3, true},
		{"option 1", 1, true},
		{"number 4 please", 4, true},
		{"the second one", 2, true},
		{"first", 1, true},
		{"the 3rd", 3, true},
		{"tell me about the retreat", 0, false},
		{"10", 0, false},
		{"0", 0, false},
	}

	for _, tc := range cases {
		got, ok := m.OrdinalSelection(tc.msg)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("OrdinalSelection(%q) = (%d, %v), want (%d, %v)", tc.msg, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestOrdinalSelection_DateSuppressesOrdinal(t *testing.T) {
	m := NewMatcher()

	// "June 1st" carries an ordinal but is a date, never a selection.
	if _, ok := m.OrdinalSelection("june 1st"); ok {
		t.Error("a dated message must not be read as an ordinal selection")
	}
	if _, ok := m.OrdinalSelection("what about the 2nd of july"); ok {
		t.Error("a dated message must not be read as an ordinal selection")
	}
}
