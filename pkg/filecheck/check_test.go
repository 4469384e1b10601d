package filecheck

import (
	"testing"

	"github.com/vertti/shipcheck/pkg/check"
	"github.com/vertti/shipcheck/pkg/testutil"
)

func TestRequiredCheck(t *testing.T) {
	required := []string{"Dockerfile", "nginx.conf", "package.json", "vite.config.js", ".dockerignore"}

	tests := []struct {
		name     string
		files    map[string]string
		wantPass int
		wantFail int
	}{
		{
			name: "all present",
			files: map[string]string{
				"app/Dockerfile":     "FROM nginx",
				"app/nginx.conf":     "server {}",
				"app/package.json":   "{}",
				"app/vite.config.js": "export default {}",
				"app/.dockerignore":  "node_modules",
			},
			wantPass: 5,
			wantFail: 0,
		},
		{
			name: "only Dockerfile and package.json",
			files: map[string]string{
				"app/Dockerfile":   "FROM nginx",
				"app/package.json": "{}",
			},
			wantPass: 2,
			wantFail: 3,
		},
		{
			name:     "empty directory",
			files:    map[string]string{},
			wantPass: 0,
			wantFail: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &RequiredCheck{
				Dir:   "app",
				Files: required,
				FS:    &testutil.MapFS{Files: tt.files},
			}
			results := c.Run()

			if len(results) != len(required) {
				t.Fatalf("len(results) = %d, want %d", len(results), len(required))
			}
			var tally check.Tally
			tally.AddAll(results)
			if tally.Passed != tt.wantPass || tally.Failed != tt.wantFail {
				t.Errorf("pass/fail = %d/%d, want %d/%d",
					tally.Passed, tally.Failed, tt.wantPass, tt.wantFail)
			}
		})
	}
}

func TestRequiredCheckMessages(t *testing.T) {
	c := &RequiredCheck{
		Dir:   ".",
		Files: []string{"nginx.conf"},
		FS:    &testutil.MapFS{},
	}
	results := c.Run()

	if results[0].ID != "files.nginx.conf" {
		t.Errorf("ID = %q, want %q", results[0].ID, "files.nginx.conf")
	}
	if results[0].Err == nil {
		t.Error("Err = nil for a missing file")
	}
}

func TestContains(t *testing.T) {
	fsys := &testutil.MapFS{Files: map[string]string{
		"nginx.conf": "server {\n  gzip on;\n}",
	}}

	ok, err := Contains(fsys, "nginx.conf", "gzip on")
	if err != nil || !ok {
		t.Errorf("Contains(gzip on) = %v, %v; want true, nil", ok, err)
	}

	ok, err = Contains(fsys, "nginx.conf", "proxy_pass")
	if err != nil || ok {
		t.Errorf("Contains(proxy_pass) = %v, %v; want false, nil", ok, err)
	}

	if _, err = Contains(fsys, "missing.conf", "gzip"); err == nil {
		t.Error("Contains() error = nil for a missing file")
	}
}

func TestMatches(t *testing.T) {
	fsys := &testutil.MapFS{Files: map[string]string{
		"nginx.conf": "try_files $uri $uri/ /index.html;",
	}}

	ok, err := Matches(fsys, "nginx.conf", `try_files[^;]*/index\.html`)
	if err != nil || !ok {
		t.Errorf("Matches() = %v, %v; want true, nil", ok, err)
	}

	if _, err = Matches(fsys, "nginx.conf", `(`); err == nil {
		t.Error("Matches() error = nil for an invalid pattern")
	}
}
