package format

import (
	"bytes"
	"strings"
	"testing"

	"panel-cli/internal/model"
)

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{"data": []model.Project{{ID: 1, Name: "Demo"}}}, "json", false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"nombre":"Demo"`) {
		t.Fatalf("json output = %s", out)
	}
}

func TestWrite_TextTable(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{"data": []model.User{
		{ID: 5, FirstName: "Ana", LastName: "García", Email: "a@b.c", Username: "ana"},
	}}, "text", false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "nombre") || !strings.Contains(out, "Ana") {
		t.Fatalf("text output = %s", out)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, "edn", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWrite_TextEmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []model.Project{}}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "sin resultados") {
		t.Fatalf("output = %q", buf.String())
	}
}
