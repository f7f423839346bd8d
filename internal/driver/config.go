package driver

import "runtime"

// Config holds the driver's resolved startup configuration — CLI flags
// parsed once in cmd/jreduce and passed down as an immutable struct.
type Config struct {
	// Input is the path to a single .class file, a .jar archive, or a
	// directory walked for either.
	Input string
	// ExcludePackages lists internal-name package prefixes (slash-
	// separated, e.g. "com/example/internal") to skip entirely.
	ExcludePackages []string
	// ExcludeClasses lists exact internal class names to skip.
	ExcludeClasses []string
	// Workers bounds the concurrent per-class worker pool; defaults to
	// runtime.NumCPU() when zero.
	Workers int
}

func (c Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
