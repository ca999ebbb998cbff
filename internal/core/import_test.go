package core

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
)

const weeklyExport = `発注書,,,,
店舗,津店,,,
No,商品名,規格・入数／単位,発注数量,備考
1,チョコレート500g,袋,3,
2,山パン,本,9,
3,ミルフィーユデニッシュラスク,5枚,2,
4,ミルフィーユデニッシュラスク,10枚,1,
5,伊勢珈琲ラスク,48/袋,96,
6,なぎさラスク,袋,4,
7,久居用エンジェルスポンジ60個,60.00／個,5,
8,エンジェルスポンジ,144/個,1,
9,FC様用たまごS,箱,2,
10,季節のフルーツ（桃）,,1,
11,"紅茶シフォン6個",台,2,
12,クランブルナッツ200g,,0,
13,季節のフルーツ（メロン）,,1,
`

func TestImport_WeeklyExport(t *testing.T) {
	cat := catalog.Default()
	rep := Import(cat, NewEngine(), []byte(weeklyExport))

	want := map[string]int{
		catalog.Choco:        3,
		catalog.DanishRusk5:  2,
		catalog.DanishRusk10: 1,
		catalog.RuskCoffee:   2,
		catalog.RuskPlain:    4,
		catalog.Sponge60:     5,
		catalog.Sponge144:    1,
		catalog.EggS:         2,
		catalog.FruitPeach:   1,
		catalog.ChiffonTea:   2,
	}
	for _, id := range cat.IDs() {
		if got := rep.Quantities[id]; got != want[id] {
			t.Errorf("Quantities[%q] = %d, want %d", id, got, want[id])
		}
	}

	if got := rep.Notes[NoteSponge]; got != "内訳(数量): 60×5 / 144×1" {
		t.Errorf("sponge note = %q", got)
	}
	if _, ok := rep.Notes[NoteFruitUnknown]; !ok {
		t.Error("fruit_unknown note missing")
	}
	if rep.Encoding != EncodingUTF8 {
		t.Errorf("Encoding = %q, want %q", rep.Encoding, EncodingUTF8)
	}
	if rep.Rows != 13 || rep.Skipped != 1 {
		t.Errorf("Rows/Skipped = %d/%d, want 13/1", rep.Rows, rep.Skipped)
	}
}

func TestImport_SpongeSixtyNote(t *testing.T) {
	data := "商品名,発注数量\n久居用エンジェルスポンジ60個,5\n"
	rep := Import(catalog.Default(), NewEngine(), []byte(data))

	if got := rep.Quantities[catalog.Sponge60]; got != 5 {
		t.Errorf("sponge_60 = %d, want 5", got)
	}
	if !strings.Contains(rep.Notes[NoteSponge], "60×5") {
		t.Errorf("sponge note = %q, want it to contain 60×5", rep.Notes[NoteSponge])
	}
}

func TestImport_ShiftJISMatchesUTF8(t *testing.T) {
	cat := catalog.Default()
	eng := NewEngine()

	utf := Import(cat, eng, []byte(weeklyExport))
	sjis := Import(cat, eng, toShiftJIS(t, weeklyExport))

	if sjis.Encoding != EncodingShiftJIS {
		t.Errorf("Encoding = %q, want %q", sjis.Encoding, EncodingShiftJIS)
	}
	if !reflect.DeepEqual(utf.Quantities, sjis.Quantities) {
		t.Errorf("quantities differ:\nutf-8     %v\nshift-jis %v", utf.Quantities, sjis.Quantities)
	}
	if !reflect.DeepEqual(utf.Notes, sjis.Notes) {
		t.Errorf("notes differ:\nutf-8     %v\nshift-jis %v", utf.Notes, sjis.Notes)
	}
}

func TestImport_Idempotent(t *testing.T) {
	cat := catalog.Default()
	eng := NewEngine()
	data := []byte(weeklyExport)

	first := Import(cat, eng, data)
	second := Import(cat, eng, data)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run differs:\n%+v\n%+v", first, second)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	cat := catalog.Default()
	rep := Import(cat, NewEngine(), nil)

	if !reflect.DeepEqual(map[string]int(rep.Quantities), cat.ZeroQuantities()) {
		t.Errorf("Quantities = %v, want all zero", rep.Quantities)
	}
	if len(rep.Notes) != 0 {
		t.Errorf("Notes = %v, want empty", rep.Notes)
	}
}

func TestImportReader(t *testing.T) {
	cat := catalog.Default()
	eng := NewEngine()

	rep, err := ImportReader(context.Background(), cat, eng, strings.NewReader(weeklyExport), 1<<20)
	if err != nil {
		t.Fatalf("ImportReader() error = %v", err)
	}
	if rep.Quantities[catalog.Choco] != 3 {
		t.Errorf("choco = %d, want 3", rep.Quantities[catalog.Choco])
	}
}

func TestImportReader_Failures(t *testing.T) {
	cat := catalog.Default()
	eng := NewEngine()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		maxBytes int64
	}{
		{"cancelled context", cancelled, 0},
		{"too large", context.Background(), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportReader(tt.ctx, cat, eng, strings.NewReader(weeklyExport), tt.maxBytes)
			if !errors.Is(err, ErrImportFailed) {
				t.Errorf("ImportReader() error = %v, want ErrImportFailed", err)
			}
		})
	}

	t.Run("read error", func(t *testing.T) {
		_, err := ImportReader(context.Background(), cat, eng, iotest.ErrReader(errors.New("disk gone")), 0)
		if !errors.Is(err, ErrImportFailed) {
			t.Errorf("ImportReader() error = %v, want ErrImportFailed", err)
		}
		if MapError(err).Message != "import failed, verify file format/encoding" {
			t.Errorf("MapError().Message = %q", MapError(err).Message)
		}
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := ImportReader(context.Background(), cat, eng, nil, 0)
		if !errors.Is(err, ErrImportFailed) {
			t.Errorf("ImportReader() error = %v, want ErrImportFailed", err)
		}
	})

	t.Run("exactly at limit", func(t *testing.T) {
		data := "商品名,発注数量\n"
		_, err := ImportReader(context.Background(), cat, eng, strings.NewReader(data), int64(len(data)))
		if err != nil {
			t.Errorf("ImportReader() error = %v, want nil", err)
		}
	})
}
