package dock

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/dockyard/pkg/errors"
)

func TestParseZone(t *testing.T) {
	tests := []struct {
		in      string
		want    Zone
		wantErr bool
	}{
		{"top", ZoneTop, false},
		{"BOTTOM", ZoneBottom, false},
		{" left ", ZoneLeft, false},
		{"right", ZoneRight, false},
		{"stacked", ZoneStacked, false},
		{"none", ZoneNone, false},
		{"center", ZoneNone, true},
		{"", ZoneNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseZone(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseZone(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidZone) {
				t.Errorf("error code = %v, want INVALID_ZONE", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseZone(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestZoneSplit(t *testing.T) {
	for z, want := range map[Zone]bool{
		ZoneNone: false, ZoneStacked: false,
		ZoneTop: true, ZoneBottom: true, ZoneLeft: true, ZoneRight: true,
	} {
		if z.Split() != want {
			t.Errorf("%v.Split() = %v", z, !want)
		}
	}
	if Zone(42).String() != "unknown" {
		t.Errorf("Zone(42).String() = %q", Zone(42).String())
	}
}

func TestAnchorJSON(t *testing.T) {
	a := Anchor{X: 1, Y: 2, W: 3, H: 4, Zone: ZoneLeft, Target: "t"}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"x":1,"y":2,"w":3,"h":4,"zone":"left","target":"t","self":false}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}

	var back Anchor
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != a {
		t.Errorf("Unmarshal() = %+v", back)
	}

	if err := json.Unmarshal([]byte(`{"zone":"middle"}`), &back); !errors.Is(err, errors.ErrCodeInvalidZone) {
		t.Errorf("unknown zone error = %v", err)
	}
}
