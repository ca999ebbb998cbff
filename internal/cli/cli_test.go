package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/export"
)

const sampleCSV = `No,商品名,規格・入数／単位,発注数量,備考
1,チョコレート500g,袋,3,
2,伊勢珈琲ラスク,48/袋,96,
3,山パン,本,9,
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func orderOf(lines []orderLine, id string) int {
	for _, l := range lines {
		if l.ID == id {
			return l.Order
		}
	}
	return -1
}

func TestImport_JSON(t *testing.T) {
	path := writeFile(t, "weekly.csv", sampleCSV)

	out, err := run(t, "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	var got importOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.File != "weekly.csv" {
		t.Errorf("file = %q, want weekly.csv", got.File)
	}
	if len(got.Orders) != catalog.Default().Len() {
		t.Errorf("orders = %d lines, want one per catalog item", len(got.Orders))
	}
	tests := map[string]int{
		catalog.Choco:      3,
		catalog.RuskCoffee: 2,
		catalog.Yamapan:    0,
	}
	for id, want := range tests {
		if n := orderOf(got.Orders, id); n != want {
			t.Errorf("order[%s] = %d, want %d", id, n, want)
		}
	}
	if got.Orders[0].ID != catalog.Choco {
		t.Errorf("first line = %s, want catalog order", got.Orders[0].ID)
	}
}

func TestImport_YAML(t *testing.T) {
	path := writeFile(t, "weekly.csv", sampleCSV)

	out, err := run(t, "import", path, "--format", "yaml")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var got importOutput
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if n := orderOf(got.Orders, catalog.Choco); n != 3 {
		t.Errorf("order[choco] = %d, want 3", n)
	}
}

func TestImport_WritesSheets(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, "weekly.csv", sampleCSV)
	stockPath := writeFile(t, "stock.yaml", "choco: 5\nrusk_coffee: 1\n")
	xlsxPath := filepath.Join(dir, "sheet.xlsx")
	htmlPath := filepath.Join(dir, "sheet.html")

	_, err := run(t, "import", csvPath,
		"--xlsx", xlsxPath, "--html", htmlPath, "--stock", stockPath, "--date", "3/1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), export.DefaultTitle) || !strings.Contains(string(html), "3/1") {
		t.Error("html sheet missing title or date")
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex(export.WorkbookSheet); idx < 0 {
		t.Errorf("sheet %q missing", export.WorkbookSheet)
	}
}

func TestImport_Errors(t *testing.T) {
	csvPath := writeFile(t, "weekly.csv", sampleCSV)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"import", filepath.Join(t.TempDir(), "nope.csv")}},
		{"bad format", []string{"import", csvPath, "--format", "xml"}},
		{"unknown stock id", []string{"import", csvPath, "--html", filepath.Join(t.TempDir(), "x.html"),
			"--stock", writeFile(t, "s.yaml", "bogus: 1\n")}},
		{"too large", []string{"import", csvPath, "--max-size", "8"}},
		{"no args", []string{"import"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	out, err := run(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if got, want := len(lines), catalog.Default().Len()+1; got != want {
		t.Errorf("table lines = %d, want %d", got, want)
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("header = %q", lines[0])
	}

	out, err = run(t, "catalog", "--format", "json")
	if err != nil {
		t.Fatalf("catalog json: %v", err)
	}
	var items []catalogLine
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.ID == catalog.Sponge60 && it.StockInput {
			t.Error("sponge_60 should not take stock input")
		}
		if it.ID == catalog.Choco && (!it.StockInput || it.Section != "冷蔵庫") {
			t.Errorf("choco line = %+v", it)
		}
	}
}

func TestPurgeAndReset(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "state.db"))

	out, err := run(t, "purge", "--older-than", "1h")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if !strings.HasPrefix(out, "purged 0 state(s)") {
		t.Errorf("purge output = %q", out)
	}

	out, err = run(t, "reset", "a", "b")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if strings.TrimSpace(out) != "reset 2 session(s)" {
		t.Errorf("reset output = %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Version:    "+Version) {
		t.Errorf("version output = %q", out)
	}
}
