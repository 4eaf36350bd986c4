package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupCodegenFlags(t *testing.T) {
	fs, flags := SetupCodegenFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.OutputDir != "" {
			t.Errorf("expected OutputDir to be empty by default, got '%s'", flags.OutputDir)
		}
		if flags.Package != "types" {
			t.Errorf("expected Package 'types' by default, got '%s'", flags.Package)
		}
		if flags.TypeName != "Root" {
			t.Errorf("expected TypeName 'Root' by default, got '%s'", flags.TypeName)
		}
		if flags.Schema {
			t.Error("expected Schema to be false by default")
		}
		if !flags.Pointers {
			t.Error("expected Pointers to be true by default")
		}
		if flags.Quiet {
			t.Error("expected Quiet to be false by default")
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-o", "./models", "--package", "models", "--type", "User", "--schema", "--pointers=false", "-q", "user.schema.json"}
		if err := fs.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if flags.OutputDir != "./models" {
			t.Errorf("expected OutputDir './models', got '%s'", flags.OutputDir)
		}
		if flags.Package != "models" {
			t.Errorf("expected Package 'models', got '%s'", flags.Package)
		}
		if flags.TypeName != "User" {
			t.Errorf("expected TypeName 'User', got '%s'", flags.TypeName)
		}
		if !flags.Schema {
			t.Error("expected Schema to be true")
		}
		if flags.Pointers {
			t.Error("expected Pointers to be false")
		}
		if !flags.Quiet {
			t.Error("expected Quiet to be true")
		}
		if fs.Arg(0) != "user.schema.json" {
			t.Errorf("expected file arg 'user.schema.json', got '%s'", fs.Arg(0))
		}
	})
}

func TestHandleCodegen_NoArgs(t *testing.T) {
	err := HandleCodegen([]string{})
	if err == nil {
		t.Error("expected error when no input provided")
	}
}

func TestHandleCodegen_Help(t *testing.T) {
	err := HandleCodegen([]string{"--help"})
	if err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleCodegen_FilterWithSchemaInput(t *testing.T) {
	err := HandleCodegen([]string{"--schema", "--filter", ".x", "user.schema.json"})
	if err == nil {
		t.Error("expected error combining --filter with --schema")
	}
}

func TestHandleCodegen_FromData(t *testing.T) {
	tmpDir := t.TempDir()

	input := filepath.Join(tmpDir, "user.json")
	payload := `{"id": 1, "name": "alice", "tags": ["a", "b"], "address": {"city": "NYC"}}`
	if err := os.WriteFile(input, []byte(payload), 0644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	outDir := filepath.Join(tmpDir, "models")
	args := []string{"-q", "--package", "models", "--type", "User", "-o", outDir, input}
	if err := HandleCodegen(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "types.go"))
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	src := string(data)
	if !strings.Contains(src, "package models") {
		t.Errorf("expected package models, got:\n%s", src)
	}
	if !strings.Contains(src, "type User struct {") {
		t.Errorf("expected root struct User, got:\n%s", src)
	}
	if !strings.Contains(src, "type UserAddress struct {") {
		t.Errorf("expected nested struct UserAddress, got:\n%s", src)
	}
	if !strings.Contains(src, "[]string") {
		t.Errorf("expected []string for tags, got:\n%s", src)
	}
}

func TestHandleCodegen_FromSchema(t *testing.T) {
	tmpDir := t.TempDir()

	input := filepath.Join(tmpDir, "user.schema.json")
	doc := `{
  "type": "object",
  "properties": {
    "id": {"type": "integer"},
    "nickname": {"type": "string"}
  },
  "required": ["id"]
}`
	if err := os.WriteFile(input, []byte(doc), 0644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	outDir := filepath.Join(tmpDir, "gen")
	args := []string{"-q", "--schema", "-o", outDir, input}
	if err := HandleCodegen(args); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "types.go"))
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	src := string(data)
	if !strings.Contains(src, "package types") {
		t.Errorf("expected default package types, got:\n%s", src)
	}
	// optional string property becomes a pointer field with omitempty
	if !strings.Contains(src, "*string") || !strings.Contains(src, `json:"nickname,omitempty"`) {
		t.Errorf("expected optional pointer field with omitempty, got:\n%s", src)
	}
	// required integer stays a plain int64
	if !strings.Contains(src, "int64") {
		t.Errorf("expected int64 for required integer, got:\n%s", src)
	}
}
