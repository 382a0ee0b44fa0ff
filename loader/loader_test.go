package loader

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	set, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(set, Default()) {
		t.Errorf("Load(\"\") = %+v, want %+v", set, Default())
	}
}

func TestLoad_FullSettings(t *testing.T) {
	set, err := Load("testdata/full.lua")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if set.Name != "ann" {
		t.Errorf("Name = %q, want %q", set.Name, "ann")
	}
	if !set.Sound {
		t.Error("Sound = false, want true")
	}
	if set.MaxInput != 40 {
		t.Errorf("MaxInput = %d, want 40", set.MaxInput)
	}
	if set.Colors.Correct != "#00ff00" || set.Colors.Incorrect != "160" ||
		set.Colors.Highlight != "226" || set.Colors.Status != "" {
		t.Errorf("Colors = %+v", set.Colors)
	}
	if want := []string{"ctrl+q", "esc"}; !reflect.DeepEqual(set.QuitKeys, want) {
		t.Errorf("QuitKeys = %v, want %v", set.QuitKeys, want)
	}
}

func TestLoad_MinimalKeepsDefaults(t *testing.T) {
	set, err := Load("testdata/minimal.lua")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if set.Name != "bo" {
		t.Errorf("Name = %q, want %q", set.Name, "bo")
	}
	if set.Sound || set.MaxInput != 0 {
		t.Errorf("Sound/MaxInput = %v/%d, want defaults", set.Sound, set.MaxInput)
	}
	if set.Colors != def.Colors {
		t.Errorf("Colors = %+v, want %+v", set.Colors, def.Colors)
	}
	if !reflect.DeepEqual(set.QuitKeys, def.QuitKeys) {
		t.Errorf("QuitKeys = %v, want %v", set.QuitKeys, def.QuitKeys)
	}
}

func TestLoad_RepeatedCallsMerge(t *testing.T) {
	set, err := Load("testdata/repeated.lua")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if set.Name != "zzz" {
		t.Errorf("Name = %q, want %q", set.Name, "zzz")
	}
	if !set.Sound {
		t.Error("Sound from the first call should survive the second")
	}
}

func TestLoad_BadValues(t *testing.T) {
	_, err := Load("testdata/bad_values.lua")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	for _, want := range []string{
		"Racer.name must not be empty",
		"Racer.max_input must be >= 0",
		"Colors.correct",
		"Colors.status",
		"Keys.quit must name at least one key",
	} {
		found := false
		for _, e := range ve.Errors {
			if strings.Contains(e, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing error containing %q in %v", want, ve.Errors)
		}
	}
	if len(ve.Errors) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load("testdata/unknown_field.lua")
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error should name the unknown field: %v", err)
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	_, err := Load("testdata/syntax_error.lua")
	if err == nil {
		t.Fatal("expected error for syntax error")
	}
	if !strings.Contains(err.Error(), "executing") {
		t.Errorf("error = %v, want an executing error", err)
	}
}

func TestLoad_Sandboxed(t *testing.T) {
	_, err := Load("testdata/sandbox.lua")
	if err == nil {
		t.Fatal("expected error calling dofile in sandbox")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/nope.lua")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing file err = %v, want os.ErrNotExist", err)
	}
}
