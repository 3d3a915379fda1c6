package hid

var keyByName = func() map[string]uint8 {
	m := make(map[string]uint8, len(KeyName))
	for code, name := range KeyName {
		m[name] = code
	}
	return m
}()

// KeyByName resolves a human-readable key name back to its raw code.
func KeyByName(name string) (uint8, bool) {
	code, ok := keyByName[name]
	return code, ok
}
