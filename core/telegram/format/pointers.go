package format

// DerefString returns *s, or defaultVal when s is nil. Used for nullable
// columns such as an application's admin reply.
func DerefString(s *string, defaultVal string) string {
	if s == nil {
		return defaultVal
	}
	return *s
}
