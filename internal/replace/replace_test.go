package replace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyLongestMatchWins(t *testing.T) {
	table := Table{"ab": "X", "b": "Y"}

	key, repl, ok := table.Apply("...ab")
	if !ok {
		t.Fatal("expected a match")
	}
	if key != "ab" || repl != "X" {
		t.Errorf("expected ab->X, got %q->%q", key, repl)
	}
}

func TestApplyShorterFallback(t *testing.T) {
	table := Table{"ab": "X", "c": "Y"}

	key, repl, ok := table.Apply("abc")
	if !ok || key != "c" || repl != "Y" {
		t.Errorf("expected c->Y, got %q->%q (ok=%v)", key, repl, ok)
	}
}

func TestApplyNoMatch(t *testing.T) {
	table := Table{"ab": "X"}

	if _, _, ok := table.Apply("xyz"); ok {
		t.Error("expected no match")
	}
	if _, _, ok := table.Apply(""); ok {
		t.Error("expected no match on empty text")
	}
}

func TestFoldCycleDakuten(t *testing.T) {
	table := FoldTable()

	seq := []string{"は", "ば", "ぱ", "は"}
	cur := seq[0]
	for _, want := range seq[1:] {
		_, next, ok := table.Apply(cur)
		if !ok {
			t.Fatalf("no fold for %q", cur)
		}
		if next != want {
			t.Fatalf("fold(%q) = %q, want %q", cur, next, want)
		}
		cur = next
	}
}

func TestFoldCycleSmallTsu(t *testing.T) {
	table := FoldTable()

	_, got, ok := table.Apply("つ")
	if !ok || got != "っ" {
		t.Errorf("expected つ->っ, got %q (ok=%v)", got, ok)
	}
}

func TestStaticLookupExact(t *testing.T) {
	r := NewStatic(Table{"kao": "(^^)", "kaomoji": "(^o^)"})

	got := r.Lookup("", "", "", "kao")
	if len(got) != 1 || got[0] != "(^^)" {
		t.Errorf("expected exact hit, got %v", got)
	}
}

func TestStaticLookupPrefixSearch(t *testing.T) {
	r := NewStatic(Table{"kao": "(^^)", "kaomoji": "(^o^)"})

	got := r.Lookup("", "", "", "ka")
	if len(got) != 2 {
		t.Errorf("expected 2 search hits, got %v", got)
	}
}

func TestLoadLuaTableString(t *testing.T) {
	table, err := LoadLuaTableString(`return { ["zz"] = "→", ["::"] = "……" }`)
	if err != nil {
		t.Fatalf("loading script: %v", err)
	}

	if table["zz"] != "→" {
		t.Errorf("expected zz->→, got %q", table["zz"])
	}
	if table["::"] != "……" {
		t.Errorf("expected ::->……, got %q", table["::"])
	}
}

func TestLoadLuaTableNonTableResult(t *testing.T) {
	if _, err := LoadLuaTableString(`return 42`); err == nil {
		t.Error("expected error for non-table result")
	}
}

func TestLoadLuaTableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.lua")
	script := `
local rules = {}
rules["btw"] = "by the way"
return rules
`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	table, err := LoadLuaTable(path)
	if err != nil {
		t.Fatalf("loading file: %v", err)
	}
	if table["btw"] != "by the way" {
		t.Errorf("expected btw expansion, got %q", table["btw"])
	}
}
