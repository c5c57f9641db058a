package tools

import (
	"log/slog"
	"os"
	"testing"

	"github.com/patqa/wikipedia-asof-mcp-server/internal/wikipedia"
)

func testRegistry(t *testing.T) *HandlerRegistry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := wikipedia.NewClient(nil, wikipedia.WithLogger(logger))
	return NewHandlerRegistry(client, logger)
}

func TestNewHandlerRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := wikipedia.NewClient(nil, wikipedia.WithLogger(logger))

	registry := NewHandlerRegistry(client, logger)

	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.wikiClient != client {
		t.Error("Registry should hold the wikipedia client reference")
	}
	if registry.logger != logger {
		t.Error("Registry should hold the logger reference")
	}
}

func TestBuildTool(t *testing.T) {
	registry := testRegistry(t)

	tests := []struct {
		name      string
		spec      ToolSpec
		wantName  string
		wantDesc  string
		wantRO    bool
		wantIdem  bool
		wantDestr bool
		wantOpen  bool
	}{
		{
			name: "read-only tool",
			spec: ToolSpec{
				Name:        "wikipedia_read_asof",
				Title:       "Read Wikipedia As Of",
				Description: "Read an article as of a moment in time",
				Method:      "ReadAsOf",
				ReadOnly:    true,
				Idempotent:  true,
			},
			wantName:  "wikipedia_read_asof",
			wantDesc:  "Read an article as of a moment in time",
			wantRO:    true,
			wantIdem:  true,
			wantDestr: false,
			wantOpen:  false,
		},
		{
			name: "open world tool",
			spec: ToolSpec{
				Name:        "wikipedia_resolve_revision",
				Title:       "Resolve Revision As Of",
				Description: "Resolve the revision current at a moment in time",
				Method:      "ResolveRevision",
				OpenWorld:   true,
			},
			wantName: "wikipedia_resolve_revision",
			wantDesc: "Resolve the revision current at a moment in time",
			wantOpen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := registry.buildTool(tt.spec)

			if tool.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tool.Name, tt.wantName)
			}
			if tool.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", tool.Description, tt.wantDesc)
			}
			if tool.Annotations == nil {
				t.Fatal("Expected annotations")
			}
			if tool.Annotations.ReadOnlyHint != tt.wantRO {
				t.Errorf("ReadOnlyHint = %v, want %v", tool.Annotations.ReadOnlyHint, tt.wantRO)
			}
			if tool.Annotations.IdempotentHint != tt.wantIdem {
				t.Errorf("IdempotentHint = %v, want %v", tool.Annotations.IdempotentHint, tt.wantIdem)
			}
			if tt.wantDestr && (tool.Annotations.DestructiveHint == nil || !*tool.Annotations.DestructiveHint) {
				t.Error("Expected DestructiveHint to be true")
			}
			if tt.wantOpen && (tool.Annotations.OpenWorldHint == nil || !*tool.Annotations.OpenWorldHint) {
				t.Error("Expected OpenWorldHint to be true")
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	registry := testRegistry(t)

	// Test that recoverPanic doesn't panic itself
	func() {
		defer registry.recoverPanic("test_tool")
		panic("test panic")
	}()

	// If we get here, panic was recovered successfully
}

func TestLogExecution(t *testing.T) {
	registry := testRegistry(t)
	spec := ToolSpec{Name: "test_tool"}

	registry.logExecution(spec,
		wikipedia.ReadAsOfArgs{QueryOrURL: "Alan Turing", TQuery: "2024-04-15", Format: "text"},
		wikipedia.ReadAsOfResult{Output: `{"input":{}}`})

	registry.logExecution(spec,
		wikipedia.ResolveRevisionArgs{Title: "Alan Turing", TQuery: "2024-04-15"},
		wikipedia.ResolveRevisionResult{
			Resolved: &wikipedia.ResolvedRevision{Title: "Alan Turing", RevID: 123, RevTime: "2024-04-10T08:00:00Z"},
		})

	registry.logExecution(spec,
		wikipedia.ReadAsOfArgs{QueryOrURL: ""},
		wikipedia.ReadAsOfResult{Error: "query_or_url is required"})
}

func TestAllToolsNotEmpty(t *testing.T) {
	if len(AllTools) == 0 {
		t.Error("AllTools should not be empty")
	}

	// Verify each tool has required fields
	for i, spec := range AllTools {
		if spec.Name == "" {
			t.Errorf("Tool %d has empty Name", i)
		}
		if spec.Method == "" {
			t.Errorf("Tool %s has empty Method", spec.Name)
		}
		if spec.Description == "" {
			t.Errorf("Tool %s has empty Description", spec.Name)
		}
		if spec.Category == "" {
			t.Errorf("Tool %s has empty Category", spec.Name)
		}
	}
}

func TestToolSpecMethods(t *testing.T) {
	knownMethods := map[string]bool{
		"ReadAsOf":        true,
		"ResolveRevision": true,
	}

	for _, spec := range AllTools {
		if !knownMethods[spec.Method] {
			t.Errorf("Tool %s has unknown method: %s", spec.Name, spec.Method)
		}
	}
}

func TestToolsByCategory(t *testing.T) {
	readTools := ToolsByCategory("read")
	if len(readTools) == 0 {
		t.Error("Expected read tools")
	}
	for _, tool := range readTools {
		if tool.Category != "read" {
			t.Errorf("Tool %s has category %s, expected read", tool.Name, tool.Category)
		}
	}

	resolveTools := ToolsByCategory("resolve")
	if len(resolveTools) == 0 {
		t.Error("Expected resolve tools")
	}

	// Non-existent category should return empty
	unknownTools := ToolsByCategory("unknown")
	if len(unknownTools) != 0 {
		t.Errorf("Expected 0 tools for unknown category, got %d", len(unknownTools))
	}
}
