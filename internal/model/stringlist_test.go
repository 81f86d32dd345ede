package model

import "testing"

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Bug,Feature", []string{"Bug", "Feature"}},
		{" Bug , Feature ", []string{"Bug", "Feature"}},
		{"Bug,,Feature,", []string{"Bug", "Feature"}},
		{"", []string{}},
		{" , ", []string{}},
	}
	for _, c := range cases {
		got := SplitList(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("split %q => %v want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("split %q => %v want %v", c.in, got, c.want)
			}
		}
	}
}

func TestStringListScanValue(t *testing.T) {
	var l StringList
	l = SplitList("Bug,Design")
	v, err := l.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var back StringList
	if err := back.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(back) != 2 || back[0] != "Bug" || back[1] != "Design" {
		t.Fatalf("round trip => %v", back)
	}

	if err := back.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if back != nil {
		t.Fatalf("scan nil should clear the list, got %v", back)
	}
}

func TestStringListMarshalNilAsEmpty(t *testing.T) {
	var l StringList
	b, err := l.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("nil list marshals to %s, want []", b)
	}
}
