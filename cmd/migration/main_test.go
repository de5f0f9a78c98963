package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "up", args: []string{"up"}, want: command{name: "up"}},
		{name: "case insensitive", args: []string{" VERSION "}, want: command{name: "version"}},
		{name: "down default", args: []string{"down"}, want: command{name: "down", steps: 1}},
		{name: "down steps", args: []string{"down", "3"}, want: command{name: "down", steps: 3}},
		{name: "down zero", args: []string{"down", "0"}, wantErr: true},
		{name: "down garbage", args: []string{"down", "x"}, wantErr: true},
		{name: "force", args: []string{"force", "1772000000"}, want: command{name: "force", target: 1772000000}},
		{name: "force missing", args: []string{"force"}, wantErr: true},
		{name: "force negative", args: []string{"force", "-1"}, wantErr: true},
		{name: "migrate alias", args: []string{"migrate", "5"}, want: command{name: "goto", target: 5}},
		{name: "empty", args: nil, wantErr: true},
		{name: "unknown", args: []string{"drop"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCommand(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseCommand()=%+v want %+v", got, tc.want)
			}
		})
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("MIGRATIONS_DIR", dir)

		got, err := resolveMigrationsDir()
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		want, _ := filepath.Abs(dir)
		if got != want {
			t.Fatalf("resolveMigrationsDir()=%q want %q", got, want)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Setenv("MIGRATIONS_DIR", filepath.Join(t.TempDir(), "missing"))
		t.Chdir(t.TempDir())

		if _, err := resolveMigrationsDir(); err == nil {
			if _, statErr := os.Stat("/app/db/migrations"); statErr != nil {
				t.Fatalf("expected error when no candidate exists")
			}
		}
	})
}
