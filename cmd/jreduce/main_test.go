package main

import "testing"

func TestRun_HelpExitsZero(t *testing.T) {
	if code := run([]string{"--help"}); code != 0 {
		t.Fatalf("expected exit code 0 for --help, got %d", code)
	}
}

func TestRun_NoArgsExitsNonzero(t *testing.T) {
	if code := run(nil); code == 0 {
		t.Fatal("expected nonzero exit code with no input argument")
	}
}

func TestRun_UnknownFlagExitsNonzero(t *testing.T) {
	if code := run([]string{"--not-a-real-flag"}); code == 0 {
		t.Fatal("expected nonzero exit code for an unrecognized flag")
	}
}

func TestSplitNonEmpty(t *testing.T) {
	cases := map[string][]string{
		"":          nil,
		"a":         {"a"},
		"a,b,c":     {"a", "b", "c"},
		"a,,b":      {"a", "b"},
	}
	for in, want := range cases {
		got := splitNonEmpty(in)
		if len(got) != len(want) {
			t.Fatalf("splitNonEmpty(%q) = %v, want %v", in, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("splitNonEmpty(%q) = %v, want %v", in, got, want)
			}
		}
	}
}
