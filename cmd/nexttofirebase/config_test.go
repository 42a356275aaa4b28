// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LowieHuyghe/next-to-firebase/internal/config"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Next = "src/app"
	cfg.Out = "dist"
	cfg.Environments = []string{"dev", "prod"}
	cfg.Watch.Debounce = time.Second

	h := newHarness(t, cfg)
	h.config.path = "/project/next-to-firebase.cue"
	if err := h.execute("config", "show", "-r", projectRoot); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	out := h.stdout.String()
	for _, want := range []string{
		"Current Configuration",
		"Config file: /project/next-to-firebase.cue",
		"next: src/app",
		"out: dist",
		"environments: dev,prod",
		"next_build_dir: (not set)",
		"region: (not set)",
		"color_scheme: auto",
		"debounce: 1s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config show misses %q:\n%s", want, out)
		}
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	t.Parallel()

	h := newHarness(t, nil)
	if err := h.execute("config", "show", "-r", projectRoot); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(h.stdout.String(), "Config file: (using defaults)") {
		t.Errorf("config show = %s", h.stdout)
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Out = "dist"
	cfg.Functions.Region = "europe-west1"

	h := newHarness(t, cfg)
	if err := h.execute("config", "dump", "-r", projectRoot); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if got, want := h.stdout.String(), config.GenerateCUE(cfg); got != want {
		t.Errorf("config dump = %q, want %q", got, want)
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	h := newHarness(t, nil)

	if err := h.execute("config", "init", "-r", root); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	path := filepath.Join(root, "next-to-firebase.cue")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config file = %q", data)
	}
	if !strings.Contains(h.stdout.String(), "Created default configuration at "+path) {
		t.Errorf("stdout = %q", h.stdout)
	}

	h.stdout.Reset()
	if err := h.execute("config", "init", "-r", root); err != nil {
		t.Fatalf("second execute() error = %v", err)
	}
	if !strings.Contains(h.stdout.String(), "already exists") {
		t.Errorf("second init stdout = %q", h.stdout)
	}
}
