package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestMigrateCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput string
	}{
		{
			name:           "migrate help",
			args:           []string{"migrate", "--help"},
			expectedOutput: "Manage database migrations",
		},
		{
			name:           "migrate up help",
			args:           []string{"migrate", "up", "--help"},
			expectedOutput: "Apply all pending database migrations",
		},
		{
			name:           "migrate status help",
			args:           []string{"migrate", "status", "--help"},
			expectedOutput: "Display the current status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if !strings.Contains(buf.String(), tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, buf.String())
			}
		})
	}
}

func TestMigrateCommandSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	migrate, _, err := cmd.Find([]string{"migrate"})
	if err != nil {
		t.Fatalf("migrate command not found: %v", err)
	}

	names := make(map[string]bool)
	for _, sub := range migrate.Commands() {
		names[sub.Name()] = true
	}

	if !names["up"] {
		t.Error("Expected up subcommand to be registered")
	}
	if !names["status"] {
		t.Error("Expected status subcommand to be registered")
	}
}

func TestMigrationModels(t *testing.T) {
	if len(migrationModels()) != 4 {
		t.Errorf("Expected 4 migration models, got %d", len(migrationModels()))
	}
}
