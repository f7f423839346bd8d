package driver

import "strings"

// excluded reports whether internalName (slash-separated, e.g.
// "com/example/Foo") matches one of cfg's exclusion lists — a pragmatic
// concession for users whose classpaths contain third-party classes whose
// rewriting is undesirable or unverifiable.
func (c Config) excluded(internalName string) bool {
	for _, cls := range c.ExcludeClasses {
		if cls == internalName {
			return true
		}
	}
	for _, pkg := range c.ExcludePackages {
		if pkg == "" {
			continue
		}
		prefix := strings.TrimSuffix(pkg, "/") + "/"
		if strings.HasPrefix(internalName, prefix) {
			return true
		}
	}
	return false
}
