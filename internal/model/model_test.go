package model

import "testing"

func TestParseID(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 42 ", 42, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"3.5", 0, true},
		{"undefined", 0, true},
	}
	for _, c := range cases {
		got, err := ParseID(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseID(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseID(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseID(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"Ana García López", "Ana", "García López"},
		{"Ana", "Ana", ""},
		{"  Ana  García ", "Ana", "García"},
		{"", "", ""},
	}
	for _, c := range cases {
		first, last := SplitFullName(c.in)
		if first != c.first || last != c.last {
			t.Fatalf("SplitFullName(%q) = (%q, %q), want (%q, %q)", c.in, first, last, c.first, c.last)
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	u := User{FirstName: "Ana", LastName: "García"}
	if got := u.DisplayName(); got != "Ana García" {
		t.Fatalf("DisplayName = %q", got)
	}
	u = User{FirstName: "Ana"}
	if got := u.DisplayName(); got != "Ana" {
		t.Fatalf("DisplayName = %q", got)
	}
}
