package driver

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/jreduce/jreduce/classio"
	"github.com/jreduce/jreduce/internal/typegraph"
)

// Run walks cfg.Input under fs, rewrites every non-excluded class it finds
// (inside bare .class files or .jar archives) to eliminate irreducible
// loops, and writes the result back in place. Per-file failures are
// collected and returned together; one malformed or unverifiable file
// never stops the rest from being processed.
func Run(fs afero.Fs, cfg Config, log hclog.Logger) error {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	inputs, err := discoverInputs(fs, cfg.Input)
	if err != nil {
		return fmt.Errorf("discovering inputs under %s: %w", cfg.Input, err)
	}
	log.Debug("discovered inputs", "count", len(inputs))

	// tg accumulates every class's extends/implements edges as workers parse
	// them, so the verifier can catch a malformed (circular) supertype chain
	// on an exception type without re-parsing the class that declared it.
	// Safe for concurrent use: typegraph.Graph guards its own state.
	tg := typegraph.New()

	jobs := make(chan string)
	results := make(chan error, len(inputs))

	var wg sync.WaitGroup
	for i := 0; i < cfg.workerCount(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- processFile(fs, cfg, log, tg, path)
			}
		}()
	}

	go func() {
		for _, path := range inputs {
			jobs <- path
		}
		close(jobs)
	}()

	var merr *multierror.Error
	for range inputs {
		if err := <-results; err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	wg.Wait()

	return merr.ErrorOrNil()
}

func processFile(fs afero.Fs, cfg Config, log hclog.Logger, tg *typegraph.Graph, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	rw := NewRewriter()
	rw.Log = log
	rw.Verifier = classio.StructuralVerifier{TypeGraph: tg}

	if isJar(path) {
		return processJar(fs, cfg, rw, log, tg, path, data)
	}
	return processClassFile(fs, cfg, rw, log, tg, path, data)
}

// registerHierarchy records unit's own extends/implements edges in tg. A
// class with no recorded supertype (an interface, or java/lang/Object
// itself) is still registered, so later lookups by name succeed.
func registerHierarchy(tg *typegraph.Graph, unit classio.ClassUnit) error {
	if unit.SuperName != "" {
		if err := tg.AddSupertype(unit.InternalName, unit.SuperName); err != nil {
			return err
		}
	} else if _, err := tg.AddClass(unit.InternalName); err != nil {
		return err
	}
	for _, iface := range unit.Interfaces {
		if err := tg.AddSupertype(unit.InternalName, iface); err != nil {
			return err
		}
	}
	return nil
}

func processClassFile(fs afero.Fs, cfg Config, rw *Rewriter, log hclog.Logger, tg *typegraph.Graph, path string, data []byte) error {
	unit, err := classio.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.excluded(unit.InternalName) {
		log.Debug("skipping excluded class", "class", unit.InternalName)
		return nil
	}
	if err := registerHierarchy(tg, *unit); err != nil {
		return fmt.Errorf("registering class hierarchy for %s: %w", path, err)
	}

	rewritten, err := RewriteClass(rw, unit)
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", path, err)
	}
	if !rewritten {
		return nil
	}

	out, err := unit.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := atomicWrite(fs, path, out); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info("rewrote class", "class", unit.InternalName, "path", path)
	return nil
}

func processJar(fs afero.Fs, cfg Config, rw *Rewriter, log hclog.Logger, tg *typegraph.Graph, path string, data []byte) error {
	jar, err := classio.ReadJar(data)
	if err != nil {
		return fmt.Errorf("reading jar %s: %w", path, err)
	}

	rewrittenEntries := make(map[string][]byte)
	var merr *multierror.Error

	for _, entry := range jar.ClassEntries() {
		classData, err := jar.ReadClass(entry)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s!%s: %w", path, entry, err))
			continue
		}
		unit, err := classio.Parse(classData)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s!%s: parsing: %w", path, entry, err))
			continue
		}
		if cfg.excluded(unit.InternalName) {
			log.Debug("skipping excluded class", "class", unit.InternalName)
			continue
		}
		if err := registerHierarchy(tg, *unit); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s!%s: registering class hierarchy: %w", path, entry, err))
			continue
		}

		rewritten, err := RewriteClass(rw, unit)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s!%s: rewriting: %w", path, entry, err))
			continue
		}
		if !rewritten {
			continue
		}

		out, err := unit.Encode()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s!%s: encoding: %w", path, entry, err))
			continue
		}
		rewrittenEntries[entry] = out
		log.Info("rewrote class", "class", unit.InternalName, "jar", path)
	}

	if len(rewrittenEntries) > 0 {
		out, err := classio.WriteJar(jar, rewrittenEntries)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("repacking %s: %w", path, err))
		} else if err := atomicWrite(fs, path, out); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("writing %s: %w", path, err))
		}
	}

	return merr.ErrorOrNil()
}
