package boards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/lazer-showdown/internal/laser"
)

const sampleBoard = `
id: "sample"
name: "Sample"
size: {rows: 4, cols: 6}
pieces:
  - {kind: emitter, row: 3, col: 0, dir: up}
  - {kind: "/", row: 0, col: 0}
  - {kind: target, row: 0, col: 5, value: 30, fixed: true}
  - {kind: wall, row: 2, col: 3}
palette: {forward: 1, backward: 2}
`

func TestParseYAML(t *testing.T) {
	board, err := ParseYAML([]byte(sampleBoard))
	if err != nil {
		t.Fatalf("ParseYAML() error: %v", err)
	}

	if board.ID != "sample" || board.Rows != 4 || board.Cols != 6 {
		t.Errorf("unexpected header: %+v", board)
	}
	if board.Palette.Forward != 1 || board.Palette.Backward != 2 {
		t.Errorf("palette = %+v", board.Palette)
	}

	want := []laser.Placed{
		{Pos: laser.P(3, 0), Piece: laser.Emitter(laser.DirUp)},
		{Pos: laser.P(0, 0), Piece: laser.Forward()},
		{Pos: laser.P(0, 5), Piece: laser.Piece{Kind: laser.KindTarget, Value: 30, Fixed: true}},
		{Pos: laser.P(2, 3), Piece: laser.Blocker()},
	}
	if diff := cmp.Diff(want, board.Pieces); diff != "" {
		t.Errorf("pieces mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLRejectsBadBoards(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no id", "size: {rows: 2, cols: 2}\n"},
		{"bad size", "id: x\nsize: {rows: 0, cols: 2}\n"},
		{"unknown kind", "id: x\nsize: {rows: 2, cols: 2}\npieces:\n  - {kind: lens, row: 0, col: 0}\n"},
		{"bad dir", "id: x\nsize: {rows: 2, cols: 2}\npieces:\n  - {kind: emitter, row: 0, col: 0, dir: sideways}\n"},
		{"valueless target", "id: x\nsize: {rows: 2, cols: 2}\npieces:\n  - {kind: target, row: 0, col: 0}\n"},
		{"overlap", "id: x\nsize: {rows: 2, cols: 2}\npieces:\n  - {kind: blocker, row: 0, col: 0}\n  - {kind: blocker, row: 0, col: 0}\n"},
		{"outside", "id: x\nsize: {rows: 2, cols: 2}\npieces:\n  - {kind: blocker, row: 2, col: 0}\n"},
		{"not yaml", "id: [unterminated"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tc.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	board, err := ParseYAML([]byte(sampleBoard))
	if err != nil {
		t.Fatal(err)
	}
	g, err := board.ToGrid()
	if err != nil {
		t.Fatal(err)
	}

	exported := FromGrid(board.ID, board.Name, g, board.Palette)
	data, err := Marshal(exported)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	again, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML(exported) error: %v\n%s", err, data)
	}
	g2, err := again.ToGrid()
	if err != nil {
		t.Fatal(err)
	}
	if !g.Equal(g2) {
		t.Errorf("grid changed across export:\n%s\nvs\n%s", laser.RenderASCII(g), laser.RenderASCII(g2))
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":          "id: b\nsize: {rows: 2, cols: 2}\n",
		"nested/a.yml":    "id: a\nsize: {rows: 3, cols: 3}\n",
		"broken.yaml":     "id: broken\nsize: {rows: 0, cols: 0}\n",
		"notes.txt":       "not a board",
		"nested/c.yaml":   "id: c\nsize: {rows: 1, cols: 4}\n",
		"nested/bad.yaml": "::",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	loader := NewDirLoader(dir)
	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}

	var ids []string
	for _, b := range all {
		ids = append(ids, b.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("loaded ids (-want +got):\n%s", diff)
	}

	if _, err := loader.LoadFile("broken.yaml"); err == nil {
		t.Error("LoadFile should report invalid boards")
	}
	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("LoadByID should fail for unknown ids")
	}
}

func TestEmbeddedBoards(t *testing.T) {
	all, err := Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("expected at least 3 embedded boards, got %d", len(all))
	}
	for _, b := range all {
		g, err := b.ToGrid()
		if err != nil {
			t.Errorf("%s: %v", b.ID, err)
			continue
		}
		if len(g.Emitters()) == 0 {
			t.Errorf("%s: board has no emitter", b.ID)
		}
		if len(g.Targets()) == 0 {
			t.Errorf("%s: board has no target", b.ID)
		}
	}
}

func TestFirstLightIsSolvable(t *testing.T) {
	board, err := Embedded().LoadByID("01-first-light")
	if err != nil {
		t.Fatal(err)
	}
	g, err := board.ToGrid()
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Place(laser.P(2, 4), laser.Forward()); err != nil {
		t.Fatal(err)
	}

	results, err := laser.Fire(g)
	if err != nil {
		t.Fatalf("Fire() error: %v", err)
	}
	if results[0].Outcome != laser.OutcomeScored || results[0].Hit != laser.P(0, 4) {
		t.Errorf("expected a hit at (0,4), got %v at %v", results[0].Outcome, results[0].Hit)
	}
}
