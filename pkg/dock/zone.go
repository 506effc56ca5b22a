package dock

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// Zone classifies where a dragged panel would attach to a target.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneTop
	ZoneBottom
	ZoneLeft
	ZoneRight
	// ZoneStacked adds the dragged panel as a tab of the target frame.
	ZoneStacked
)

var zoneNames = [...]string{
	ZoneNone:    "none",
	ZoneTop:     "top",
	ZoneBottom:  "bottom",
	ZoneLeft:    "left",
	ZoneRight:   "right",
	ZoneStacked: "stacked",
}

func (z Zone) String() string {
	if z < 0 || int(z) >= len(zoneNames) {
		return "unknown"
	}
	return zoneNames[z]
}

// Split reports whether attaching in z splits the target rather than
// stacking onto it.
func (z Zone) Split() bool {
	return z == ZoneTop || z == ZoneBottom || z == ZoneLeft || z == ZoneRight
}

// ParseZone converts a zone name (case-insensitive) back into a Zone.
func ParseZone(s string) (Zone, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for z, n := range zoneNames {
		if n == name {
			return Zone(z), nil
		}
	}
	return ZoneNone, errors.New(errors.ErrCodeInvalidZone, "unknown zone %q", s)
}

func (z Zone) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

func (z *Zone) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidZone, err, "zone must be a string")
	}
	parsed, err := ParseZone(s)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
