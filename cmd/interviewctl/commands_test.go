package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPasswordCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "interview.db")
	flags := []string{"--store", "sqlite", "--sqlite-path", dbPath}

	out, err := run(t, append([]string{"password", "check", "anything"}, flags...)...)
	if err != nil {
		t.Fatalf("check before set: %v", err)
	}
	if !strings.Contains(out, "DB에 비밀번호가 없습니다") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, append([]string{"password", "set", "science2025"}, flags...)...); err != nil {
		t.Fatalf("set: %v", err)
	}

	tests := []struct {
		password string
		want     string
	}{
		{password: "science2025", want: "Password accepted"},
		{password: "Science2025", want: "비밀번호가 올바르지 않습니다."},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			out, err := run(t, append([]string{"password", "check", tt.password}, flags...)...)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestPasswordSet_Errors(t *testing.T) {
	if _, err := run(t, "password", "set", "x", "--store", "none"); err == nil {
		t.Error("expected error without a store")
	}
	if _, err := run(t, "password", "set", "", "--store", "memory"); err == nil {
		t.Error("expected error for empty password")
	}
	if _, err := run(t, "password", "set"); err == nil {
		t.Error("expected error for missing argument")
	}
}

func TestMigrateCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "interview.db")
	flags := []string{"--sqlite-path", dbPath}

	out, err := run(t, append([]string{"migrate", "status"}, flags...)...)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Applied: false") {
		t.Errorf("status before up = %q", out)
	}

	if _, err := run(t, append([]string{"migrate", "up"}, flags...)...); err != nil {
		t.Fatalf("up: %v", err)
	}

	out, _ = run(t, append([]string{"migrate", "status"}, flags...)...)
	if !strings.Contains(out, "Version: 1") || !strings.Contains(out, "Applied: true") {
		t.Errorf("status after up = %q", out)
	}

	if _, err := run(t, append([]string{"migrate", "down"}, flags...)...); err != nil {
		t.Fatalf("down: %v", err)
	}
}
