package disc

import (
	"fmt"
	"strings"
)

// Role is the coarse purpose assigned to a playlist or track.
type Role int

const (
	RoleUnset Role = iota
	RoleMainFeature
	RoleSpecialFeature
	RoleCommentary
	RoleMisc
)

var roleNames = map[Role]string{
	RoleUnset:          "unset",
	RoleMainFeature:    "main_feature",
	RoleSpecialFeature: "special_feature",
	RoleCommentary:     "commentary",
	RoleMisc:           "misc",
}

var roleLabels = map[Role]string{
	RoleUnset:          "Unset",
	RoleMainFeature:    "Main Feature",
	RoleSpecialFeature: "Special Feature",
	RoleCommentary:     "Commentary",
	RoleMisc:           "Misc",
}

// String returns the stable snake_case name used in logs and serialized output.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Label returns a human-readable name.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return r.String()
}

// IsSet reports whether a role has been assigned.
func (r Role) IsSet() bool {
	return r != RoleUnset
}

// ParseRole converts a serialized role name back to a Role. Both the
// snake_case names and the display labels are accepted.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	if normalized == "" {
		return RoleUnset, nil
	}
	for role, name := range roleNames {
		if name == normalized {
			return role, nil
		}
	}
	return RoleUnset, fmt.Errorf("unknown role %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
