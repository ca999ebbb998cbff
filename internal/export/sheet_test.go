package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"github.com/JonMunkholm/OrderSheet/internal/state"
)

func renderDoc(t *testing.T, p PrintPayload) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderSheet(context.Background(), &buf, p); err != nil {
		t.Fatalf("RenderSheet: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestRenderSheet_Structure(t *testing.T) {
	doc := renderDoc(t, samplePayload())

	if got := doc.Find("title").Text(); got != DefaultTitle {
		t.Errorf("title = %q, want %q", got, DefaultTitle)
	}
	if got := doc.Find(".sheet-head .date").Text(); got != "2024/05/01" {
		t.Errorf("date = %q, want 2024/05/01", got)
	}

	var bands []string
	doc.Find(".band").Each(func(_ int, s *goquery.Selection) {
		bands = append(bands, s.Text())
	})
	if got := strings.Join(bands, ","); got != "冷蔵庫,常温,冷凍庫,冷凍庫" {
		t.Errorf("bands = %s", got)
	}

	if n := doc.Find(".row").Length(); n != 3 {
		t.Errorf("rows = %d, want 3", n)
	}
	if n := doc.Find(".cell").Length(); n != 17 {
		t.Errorf("cells = %d, want 17", n)
	}
	if got := doc.Find(".footnote").Text(); got != Footnote {
		t.Errorf("footnote = %q", got)
	}
}

func TestRenderSheet_Cells(t *testing.T) {
	doc := renderDoc(t, samplePayload())

	choco := doc.Find(`[data-item="choco"]`)
	if got := choco.Find(".stock").Text(); got != "5" {
		t.Errorf("choco stock = %q, want 5", got)
	}
	if got := choco.Find(".circle").Text(); got != "3" {
		t.Errorf("choco order = %q, want 3", got)
	}
	if choco.HasClass("warn") {
		t.Error("choco warns with stock above order")
	}

	if !doc.Find(`[data-item="egg_s"]`).HasClass("warn") {
		t.Error("egg_s does not warn with order above stock")
	}

	yamapan := doc.Find(`[data-item="yamapan"]`)
	if !yamapan.Find(".order").HasClass("hidden") {
		t.Error("yamapan order is not hidden")
	}
	if yamapan.HasClass("warn") {
		t.Error("yamapan warns with hidden order")
	}

	rusk := doc.Find(`[data-item="rusk"] .half`)
	if rusk.Length() != 2 {
		t.Fatalf("rusk halves = %d, want 2", rusk.Length())
	}
	if got := rusk.Eq(0).Find(".stock").Text(); got != "48" {
		t.Errorf("rusk coffee stock = %q, want 48", got)
	}
	if got := rusk.Eq(1).Find(".circle").Text(); got != "2" {
		t.Errorf("rusk plain order = %q, want 2", got)
	}

	sponge := doc.Find(`[data-item="sponge"]`)
	if got := sponge.Find(`[data-unit="144"] .circle`).Text(); got != "2" {
		t.Errorf("sponge 144 = %q, want 2", got)
	}
	if got := sponge.Find(".total .circle").Text(); got != "588" {
		t.Errorf("sponge total = %q, want 588", got)
	}
}

func TestRenderSheet_EscapesText(t *testing.T) {
	items := []catalog.Item{}
	for _, it := range catalog.Default().Items() {
		if it.ID == catalog.Choco {
			it.DisplayName = `<script>alert("x")</script>`
		}
		items = append(items, it)
	}
	cat := catalog.MustNew(items)

	p := BuildPayload(cat, state.Default(), nil, "<b>title</b>", "")

	var buf bytes.Buffer
	if err := RenderSheet(context.Background(), &buf, p); err != nil {
		t.Fatalf("RenderSheet: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, "<script>") || strings.Contains(html, "<b>title") {
		t.Error("unescaped markup in output")
	}

	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(html))
	if got := doc.Find(`[data-item="choco"] .name`).Text(); got != `<script>alert("x")</script>` {
		t.Errorf("choco name = %q", got)
	}
}
