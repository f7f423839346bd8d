// Command jreduce rewrites irreducible loops in JVM bytecode into
// equivalent reducible control flow via node splitting, in place, for a
// single .class file, a .jar archive, or a directory tree of either.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"github.com/jreduce/jreduce/internal/driver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("jreduce", flag.ContinueOnError)

	excludePackages := fs.String("excludePackages", "", "comma-separated internal-name package prefixes to skip")
	excludeClasses := fs.String("excludeClasses", "", "comma-separated internal class names to skip")
	verbose := fs.BoolP("verbose", "v", false, "enable debug-level logging")
	help := fs.BoolP("help", "h", false, "show usage and exit")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *help {
		fmt.Fprintln(os.Stdout, usage)
		fs.PrintDefaults()
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	level := hclog.Info
	if *verbose {
		level = hclog.Debug
	}
	log := hclog.New(&hclog.LoggerOptions{Name: "jreduce", Level: level})

	cfg := driver.Config{
		Input:           fs.Arg(0),
		ExcludePackages: splitNonEmpty(*excludePackages),
		ExcludeClasses:  splitNonEmpty(*excludeClasses),
	}

	if err := driver.Run(afero.NewOsFs(), cfg, log); err != nil {
		log.Error("rewrite failed", "error", err)
		return 1
	}
	return 0
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

const usage = `jreduce [flags] <input>

Rewrites irreducible loops in JVM bytecode to reducible form, in place.
<input> is a .class file, a .jar archive, or a directory containing either.`
