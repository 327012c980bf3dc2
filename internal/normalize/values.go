package normalize

// FillFloat applies the null→0 fill policy for numeric measures.
func FillFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FillBool applies the null→false fill policy for boolean flags.
func FillBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}

// OptStr returns nil for an empty string, matching how absent string
// columns come out of loosely produced extracts.
func OptStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DerefStr returns the empty string for a nil pointer.
func DerefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
