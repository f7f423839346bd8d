package driver

import "testing"

func TestExcluded_ExactClassMatch(t *testing.T) {
	cfg := Config{ExcludeClasses: []string{"com/example/Foo"}}
	if !cfg.excluded("com/example/Foo") {
		t.Fatal("expected com/example/Foo to be excluded")
	}
	if cfg.excluded("com/example/Bar") {
		t.Fatal("expected com/example/Bar not to be excluded")
	}
}

func TestExcluded_PackagePrefixMatch(t *testing.T) {
	cfg := Config{ExcludePackages: []string{"com/example/internal"}}
	if !cfg.excluded("com/example/internal/Helper") {
		t.Fatal("expected nested class under excluded package to be excluded")
	}
	if cfg.excluded("com/example/internalfoo/Other") {
		t.Fatal("package exclusion must not match on a bare string prefix across path segments")
	}
}

func TestExcluded_EmptyListsExcludeNothing(t *testing.T) {
	cfg := Config{}
	if cfg.excluded("anything/At/All") {
		t.Fatal("empty exclusion lists must exclude nothing")
	}
}
