package region

import "testing"

func TestClassify(t *testing.T) {
	c := NewClassifier("Karnataka", []string{"Puducherry "})

	cases := []struct {
		delivery string
		want     Mode
	}{
		{"Karnataka", SplitLocal},
		{"karnataka", SplitLocal},
		{"  KARNATAKA  ", SplitLocal},
		{"puducherry", SplitLocal},
		{"Maharashtra", SingleCross},
		{"", SingleCross},
		{"atlantis", SingleCross},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.delivery); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.delivery, got, tc.want)
		}
	}
}

func TestClassifyNoHome(t *testing.T) {
	c := NewClassifier("", nil)
	if got := c.Classify("karnataka"); got != SingleCross {
		t.Fatalf("unconfigured home must classify as SINGLE_CROSS, got %s", got)
	}
}

func TestModeString(t *testing.T) {
	if SingleCross.String() != "SINGLE_CROSS" {
		t.Fatalf("SingleCross = %s", SingleCross.String())
	}
	if SplitLocal.String() != "SPLIT_LOCAL" {
		t.Fatalf("SplitLocal = %s", SplitLocal.String())
	}
}
