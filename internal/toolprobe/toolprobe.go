// Package toolprobe detects whether external executables are available
// and memoizes the answer for the remainder of the run.
package toolprobe

import (
	"context"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"github.com/hexlab-tools/hexvalidate/internal/execx"
)

// ProbeTimeout bounds a single tool probe
const ProbeTimeout = 5 * time.Second

// versionPattern matches the first semantic version in probe output
var versionPattern = regexp.MustCompile(`v?\d+\.\d+\.\d+`)

// Info describes the availability of one external tool
type Info struct {
	// Available is true when the tool responded to the probe
	Available bool

	// Version is the first semantic version found in probe output
	Version string

	// Path is the resolved executable path, when found
	Path string
}

// Prober probes tools and caches results per (command, cwd) for the
// lifetime of the process. First writer wins; there is no invalidation
// within a run.
type Prober struct {
	mu    sync.Mutex
	cache map[probeKey]Info
}

type probeKey struct {
	command string
	cwd     string
}

// NewProber creates an empty prober
func NewProber() *Prober {
	return &Prober{cache: make(map[probeKey]Info)}
}

// Probe checks whether command responds to a version probe in cwd.
// The probe arguments default to --version. A non-zero exit, a spawn
// error, or a timeout yields Available=false without raising.
func (p *Prober) Probe(ctx context.Context, command, cwd string, args ...string) Info {
	key := probeKey{command: command, cwd: cwd}

	p.mu.Lock()
	if info, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return info
	}
	p.mu.Unlock()

	info := probe(ctx, command, cwd, args)

	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		info = cached
	} else {
		p.cache[key] = info
	}
	p.mu.Unlock()

	return info
}

func probe(ctx context.Context, command, cwd string, args []string) Info {
	if len(args) == 0 {
		args = []string{"--version"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	result, err := execx.Run(probeCtx, command, args, execx.Options{Cwd: cwd})
	if err != nil || result.ExitCode != 0 {
		return Info{Available: false}
	}

	// Many tools print the version to stderr
	version := versionPattern.FindString(result.Stdout)
	if version == "" {
		version = versionPattern.FindString(result.Stderr)
	}

	path, _ := exec.LookPath(command)

	return Info{Available: true, Version: version, Path: path}
}
