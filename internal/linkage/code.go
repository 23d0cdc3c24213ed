// Package linkage joins independently published institution and program
// datasets whose schemas are not contractually stable. The join key column is
// discovered statistically instead of being hard-coded, so publisher renames
// do not break the run as long as the values still overlap.
package linkage

import (
	"fmt"
	"regexp"
	"strings"
)

// decimalArtifact matches "123.0"-style values that some exports produce for
// numeric code columns.
var decimalArtifact = regexp.MustCompile(`^\d+\.\d+$`)

// NormalizeCode canonicalizes a raw code value: digits only, leading zeros
// stripped, decimal artifacts truncated to the integer part. The same function
// must be applied on both sides of the join or attachment silently fails.
// Idempotent: NormalizeCode(NormalizeCode(v)) == NormalizeCode(v).
func NormalizeCode(v any) string {
	if v == nil {
		return ""
	}

	s := strings.TrimSpace(stringify(v))
	if decimalArtifact.MatchString(s) {
		s = strings.SplitN(s, ".", 2)[0]
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteByte(byte(r))
		}
	}

	return strings.TrimLeft(digits.String(), "0")
}

// stringify renders a raw JSON value. Floats that are whole numbers print
// without the trailing ".0" Go would not add anyway, so %v is enough; the
// decimal-artifact rule above covers exports that ship "123.0" as text.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
