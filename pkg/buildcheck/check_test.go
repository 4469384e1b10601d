package buildcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/execx"
	"github.com/vertti/shipcheck/pkg/resourcecheck"
	"github.com/vertti/shipcheck/pkg/testutil"
)

// mockFS extends the shared in-memory filesystem with directory sizes.
type mockFS struct {
	*testutil.MapFS
	dirSize int64
}

func (m *mockFS) DirSize(string) (int64, error) { return m.dirSize, nil }

func statusByID(t *testing.T, results []check.Result, id string) check.Result {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("no result with id %q in %v", id, results)
	return check.Result{}
}

func buildRunner(t *testing.T, err error, stderr string) *execx.MockRunner {
	t.Helper()
	return &execx.MockRunner{
		RunFunc: func(_ context.Context, dir, name string, args ...string) (string, string, error) {
			if name != "npm" || len(args) != 2 || args[0] != "run" || args[1] != "build" {
				t.Errorf("unexpected command %s %v", name, args)
			}
			if dir != "app" {
				t.Errorf("build must run in the project dir, got %q", dir)
			}
			return "", stderr, err
		},
	}
}

func TestBuildCheckFullSuccess(t *testing.T) {
	fsys := &mockFS{
		MapFS: &testutil.MapFS{
			Files: map[string]string{
				"app/package.json":    `{"scripts":{"build":"vite build"}}`,
				"app/dist/index.html": "<html></html>",
			},
			Dirs: []string{"app/node_modules", "app/dist"},
		},
		dirSize: 2 * 1024 * 1024,
	}
	c := &Check{
		Dir:         "app",
		BuildDir:    "dist",
		MinFreeDisk: 100,
		Runner:      buildRunner(t, nil, ""),
		FS:          fsys,
		Disk: &resourcecheck.MockChecker{
			FreeDiskSpaceFunc: func(string) (uint64, error) { return 10 << 30, nil },
		},
	}
	results := c.Run()

	for _, id := range []string{"build.script", "build.deps", "build.disk", "build.compile", "build.output", "build.entry"} {
		if r := statusByID(t, results, id); r.Status != check.StatusPass {
			t.Errorf("%s = %q (%s), want PASS", id, r.Status, r.Message)
		}
	}
	if r := statusByID(t, results, "build.output"); r.Message != "dist is 2.0MB" {
		t.Errorf("build.output message = %q", r.Message)
	}
}

func TestBuildCheckMissingManifest(t *testing.T) {
	c := &Check{
		Dir:    "app",
		FS:     &mockFS{MapFS: &testutil.MapFS{}},
		Runner: &execx.MockRunner{},
	}
	results := c.Run()

	if len(results) != 1 || results[0].Status != check.StatusFail {
		t.Fatalf("results = %v, want a single FAIL", results)
	}
	if results[0].ID != "build.manifest" {
		t.Errorf("ID = %q, want build.manifest", results[0].ID)
	}
}

func TestBuildCheckNoBuildScript(t *testing.T) {
	fsys := &mockFS{MapFS: &testutil.MapFS{
		Files: map[string]string{"app/package.json": `{"scripts":{"dev":"vite"}}`},
	}}
	c := &Check{Dir: "app", FS: fsys, Runner: &execx.MockRunner{}}
	results := c.Run()

	if len(results) != 1 || results[0].ID != "build.script" || results[0].Status != check.StatusFail {
		t.Fatalf("results = %v, want a single build.script FAIL", results)
	}
}

func TestBuildCheckMissingNodeModulesWarns(t *testing.T) {
	fsys := &mockFS{MapFS: &testutil.MapFS{
		Files: map[string]string{"app/package.json": `{"scripts":{"build":"vite build"}}`},
	}}
	c := &Check{Dir: "app", BuildDir: "dist", FS: fsys, Runner: buildRunner(t, nil, "")}
	results := c.Run()

	if r := statusByID(t, results, "build.deps"); r.Status != check.StatusWarn {
		t.Errorf("build.deps = %q, want WARN", r.Status)
	}
	// the build is still attempted
	if r := statusByID(t, results, "build.compile"); r.Status != check.StatusPass {
		t.Errorf("build.compile = %q, want PASS", r.Status)
	}
}

func TestBuildCheckBuildFailure(t *testing.T) {
	fsys := &mockFS{MapFS: &testutil.MapFS{
		Files: map[string]string{"app/package.json": `{"scripts":{"build":"vite build"}}`},
		Dirs:  []string{"app/node_modules"},
	}}
	c := &Check{
		Dir:      "app",
		BuildDir: "dist",
		FS:       fsys,
		Runner:   buildRunner(t, errors.New("exit status 1"), "error during build:\nRollupError: could not resolve ./missing"),
	}
	results := c.Run()

	r := statusByID(t, results, "build.compile")
	if r.Status != check.StatusFail {
		t.Fatalf("build.compile = %q, want FAIL", r.Status)
	}
	if !testutil.ContainsDetail(r.Details, "RollupError") {
		t.Errorf("missing stderr detail, got %v", r.Details)
	}
	// output checks are skipped after a failed build
	for _, res := range results {
		if res.ID == "build.output" || res.ID == "build.entry" {
			t.Errorf("unexpected %s result after failed build", res.ID)
		}
	}
}

func TestBuildCheckMissingEntryHTML(t *testing.T) {
	fsys := &mockFS{
		MapFS: &testutil.MapFS{
			Files: map[string]string{"app/package.json": `{"scripts":{"build":"vite build"}}`},
			Dirs:  []string{"app/node_modules", "app/dist"},
		},
		dirSize: 1024,
	}
	c := &Check{Dir: "app", BuildDir: "dist", FS: fsys, Runner: buildRunner(t, nil, "")}
	results := c.Run()

	if r := statusByID(t, results, "build.entry"); r.Status != check.StatusFail {
		t.Errorf("build.entry = %q, want FAIL when index.html is absent", r.Status)
	}
}

func TestBuildCheckLowDiskWarns(t *testing.T) {
	fsys := &mockFS{MapFS: &testutil.MapFS{
		Files: map[string]string{"app/package.json": `{"scripts":{"build":"vite build"}}`},
		Dirs:  []string{"app/node_modules"},
	}}
	c := &Check{
		Dir:         "app",
		BuildDir:    "dist",
		MinFreeDisk: 500 << 20,
		FS:          fsys,
		Runner:      buildRunner(t, nil, ""),
		Disk: &resourcecheck.MockChecker{
			FreeDiskSpaceFunc: func(string) (uint64, error) { return 100 << 20, nil },
		},
	}
	results := c.Run()

	r := statusByID(t, results, "build.disk")
	if r.Status != check.StatusWarn {
		t.Errorf("build.disk = %q, want WARN", r.Status)
	}
}

func TestMinifyCheck(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		wantStatus check.Status
	}{
		{
			name:       "explicit minify setting",
			files:      map[string]string{"vite.config.js": "export default { build: { minify: 'esbuild' } }"},
			wantStatus: check.StatusPass,
		},
		{
			name:       "no minify setting",
			files:      map[string]string{"vite.config.js": "export default {}"},
			wantStatus: check.StatusWarn,
		},
		{
			name:       "config missing",
			files:      map[string]string{},
			wantStatus: check.StatusWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &MinifyCheck{Path: "vite.config.js", FS: &testutil.MapFS{Files: tt.files}}
			results := c.Run()

			if results[0].Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", results[0].Status, tt.wantStatus)
			}
		})
	}
}
