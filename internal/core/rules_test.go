package core

import (
	"reflect"
	"strings"
	"testing"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
)

func row(name, qty, spec string) Row {
	return Row{ColumnProductName: name, ColumnOrderQty: qty, ColumnSpec: spec}
}

func contrib(pairs ...any) []Contribution {
	var out []Contribution
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Contribution{ItemID: pairs[i].(string), Qty: pairs[i+1].(int)})
	}
	return out
}

func TestEngine_Classify(t *testing.T) {
	eng := NewEngine()

	tests := []struct {
		name     string
		row      Row
		want     []Contribution
		wantRule string
		wantNote string // key of the single expected note, if any
	}{
		// bread
		{"yamapan excluded", row("山パン", "5", ""), nil, "bread-exclusion", ""},
		{"chigiri excluded", row("ちぎりパン", "5", ""), nil, "bread-exclusion", ""},
		{"danish excluded", row("デニッシュ", "3", ""), nil, "bread-exclusion", ""},

		// danish rusk
		{"danish rusk 5", row("ミルフィーユデニッシュラスク", "2", "5枚入"), contrib(catalog.DanishRusk5, 2), "danish-rusk-width", ""},
		{"danish rusk 10", row("ミルフィーユデニッシュラスク", "4", "10枚入"), contrib(catalog.DanishRusk10, 4), "danish-rusk-width", ""},
		{"danish rusk unknown width", row("ミルフィーユデニッシュラスク", "4", "箱"), nil, "danish-rusk-width", NoteDanishRuskUnknown},

		// rusk
		{"coffee rusk pieces", row("伊勢珈琲ラスク", "96", ""), contrib(catalog.RuskCoffee, 2), "rusk-coffee-branded", ""},
		{"coffee rusk packs", row("伊勢 コーヒー ラスク", "47", ""), contrib(catalog.RuskCoffee, 47), "rusk-coffee-branded", ""},
		{"plain rusk pieces", row("なぎさラスク", "48", ""), contrib(catalog.RuskPlain, 1), "rusk-plain-branded", ""},
		{"unbranded coffee rusk", row("珈琲ラスク", "96", ""), contrib(catalog.RuskCoffee, 2), "rusk-catch-all", ""},
		{"unbranded rusk", row("ラスク詰合せ", "50", ""), contrib(catalog.RuskPlain, 50), "rusk-catch-all", ""},

		// nuts
		{"crumble nuts", row("クランブルナッツ200g", "4", ""), contrib(catalog.Nuts, 4), "crumble-nuts", ""},

		// sponge
		{"sponge 60 from name", row("久居用エンジェルスポンジ60個", "5", ""), contrib(catalog.Sponge60, 5), "angel-sponge", ""},
		{"sponge 36 from name", row("エンジェルスポンジ36個", "1", ""), contrib(catalog.Sponge36, 1), "angel-sponge", ""},
		{"sponge 144 from spec", row("エンジェルスポンジ", "2", "144.00／個"), contrib(catalog.Sponge144, 2), "angel-sponge", ""},
		{"sponge 49 direct ship", row("FCエンジェルスポンジ49【直送】", "3", ""), contrib(catalog.Sponge49, 3), "angel-sponge", ""},
		{"sponge unknown unit", row("エンジェルスポンジ", "3", "ケース"), nil, "angel-sponge", NoteSpongeUnknown},

		// egg
		{"egg S", row("FC様用たまごS", "2", ""), contrib(catalog.EggS, 2), "egg-s", ""},
		{"egg full-width S", row("たまごＳ", "2", ""), contrib(catalog.EggS, 2), "egg-s", ""},
		{"egg S in spec", row("たまご", "1", "Sサイズ"), contrib(catalog.EggS, 1), "egg-s", ""},
		{"egg without size", row("たまごM", "1", ""), nil, "egg-s", NoteEggUnknown},

		// fruit
		{"peach", row("季節のフルーツ（桃）", "2", ""), contrib(catalog.FruitPeach, 2), "seasonal-fruit", ""},
		{"strawberry", row("季節のフルーツいちご", "2", ""), contrib(catalog.FruitAngel, 2), "seasonal-fruit", ""},
		{"unknown fruit", row("季節のフルーツ(メロン)", "2", ""), nil, "seasonal-fruit", NoteFruitUnknown},

		// staples and chiffon
		{"choco", row("チョコレート500g", "3", ""), contrib(catalog.Choco, 3), "staples", ""},
		{"crumble", row("クランブル200g", "1", ""), contrib(catalog.Crumble, 1), "staples", ""},
		{"onions", row("白玉ねぎ・赤玉ねぎ", "1", ""), contrib(catalog.WhiteOnion, 1, catalog.RedOnion, 1), "staples", ""},
		{"tea chiffon", row("紅茶シフォン6個", "2", ""), contrib(catalog.ChiffonTea, 2), "chiffon", ""},
		{"season chiffon", row("期間限定シフォン6個", "2", ""), contrib(catalog.ChiffonSeason, 2), "chiffon", ""},
		{"plain chiffon", row("シフォンケーキ6個", "2", ""), contrib(catalog.ChiffonPlain, 2), "chiffon", ""},

		// unmatched
		{"unknown product", row("謎の商品", "1", ""), nil, NoteUnmatched, NoteUnmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Classify(tt.row)

			if got.Skipped {
				t.Fatal("row unexpectedly skipped")
			}
			if !reflect.DeepEqual(got.Contributions, tt.want) {
				t.Errorf("Contributions = %v, want %v", got.Contributions, tt.want)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", got.Rule, tt.wantRule)
			}

			switch {
			case tt.wantNote == "" && len(got.Notes) > 0:
				t.Errorf("Notes = %v, want none", got.Notes)
			case tt.wantNote != "":
				if len(got.Notes) != 1 || got.Notes[0].Key != tt.wantNote {
					t.Errorf("Notes = %v, want one note %q", got.Notes, tt.wantNote)
				}
			}
		})
	}
}

func TestEngine_SkipsEmptyNameAndNonPositiveQuantity(t *testing.T) {
	eng := NewEngine()

	tests := []struct {
		name string
		row  Row
	}{
		{"empty name", row("  ", "3", "")},
		{"zero qty", row("チョコレート500g", "0", "")},
		{"negative qty", row("チョコレート500g", "-2", "")},
		{"unparseable qty", row("チョコレート500g", "abc", "")},
		{"missing qty column", Row{ColumnProductName: "チョコレート500g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.Classify(tt.row)
			if !got.Skipped {
				t.Error("Skipped = false, want true")
			}
			if len(got.Contributions) != 0 || len(got.Notes) != 0 {
				t.Errorf("skipped row contributed: %+v", got)
			}
		})
	}
}

func TestEngine_BreadIgnoresQuantity(t *testing.T) {
	eng := NewEngine()
	for _, qty := range []string{"1", "48", "100000"} {
		got := eng.Classify(row("山パン", qty, ""))
		if len(got.Contributions) != 0 {
			t.Errorf("山パン qty %s contributed %v", qty, got.Contributions)
		}
	}
}

func TestEngine_SpongeRecordsSubSKU(t *testing.T) {
	got := NewEngine().Classify(row("FCエンジェルスポンジ49個【直送】", "7", ""))

	want := []SubSKU{{Kind: "49直", Qty: 7}}
	if !reflect.DeepEqual(got.SubSKUs, want) {
		t.Errorf("SubSKUs = %v, want %v", got.SubSKUs, want)
	}
}

func TestEngine_NoteTextNamesTheRow(t *testing.T) {
	got := NewEngine().Classify(row("エンジェル スポンジ", "3", "ケース"))
	if len(got.Notes) != 1 {
		t.Fatalf("Notes = %v, want 1", got.Notes)
	}

	text := got.Notes[0].Text
	for _, want := range []string{"エンジェル スポンジ", "規格:ケース", "数量:3"} {
		if !strings.Contains(text, want) {
			t.Errorf("note %q missing %q", text, want)
		}
	}
}

func TestEngine_EggNoteDroppedWhenLaterRuleMatches(t *testing.T) {
	got := NewEngine().Classify(row("たまごシフォン", "2", ""))

	if want := contrib(catalog.ChiffonPlain, 2); !reflect.DeepEqual(got.Contributions, want) {
		t.Errorf("Contributions = %v, want %v", got.Contributions, want)
	}
	if len(got.Notes) != 0 {
		t.Errorf("Notes = %v, want none", got.Notes)
	}
}

func TestEngine_StaplesFallThroughToChiffon(t *testing.T) {
	got := NewEngine().Classify(row("チョコレート500g入りシフォン", "2", ""))

	want := contrib(catalog.Choco, 2, catalog.ChiffonPlain, 2)
	if !reflect.DeepEqual(got.Contributions, want) {
		t.Errorf("Contributions = %v, want %v", got.Contributions, want)
	}
}

func TestDefaultRules_Order(t *testing.T) {
	want := []string{
		"bread-exclusion",
		"danish-rusk-width",
		"rusk-coffee-branded",
		"rusk-plain-branded",
		"rusk-catch-all",
		"crumble-nuts",
		"angel-sponge",
		"egg-s",
		"seasonal-fruit",
		"staples",
		"chiffon",
	}
	if got := NewEngine().RuleNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("RuleNames() = %v, want %v", got, want)
	}
}

func swapRules(rules []Rule, a, b string) []Rule {
	out := append([]Rule(nil), rules...)
	ia, ib := -1, -1
	for i, r := range out {
		switch r.Name {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	out[ia], out[ib] = out[ib], out[ia]
	return out
}

// Each case swaps two rules and checks the row lands somewhere else, so a
// reorder cannot slip through unnoticed.
func TestDefaultRules_OrderIsLoadBearing(t *testing.T) {
	tests := []struct {
		earlier, later string
		row            Row
		want           string
	}{
		{"danish-rusk-width", "rusk-catch-all", row("ミルフィーユデニッシュラスク", "1", "5枚"), catalog.DanishRusk5},
		{"rusk-plain-branded", "rusk-catch-all", row("なぎさ珈琲ラスク", "1", ""), catalog.RuskPlain},
		{"seasonal-fruit", "chiffon", row("季節のフルーツ桃シフォン", "1", ""), catalog.FruitPeach},
		{"egg-s", "chiffon", row("たまごSシフォン", "1", ""), catalog.EggS},
		{"angel-sponge", "chiffon", row("エンジェルスポンジ60個シフォン", "1", ""), catalog.Sponge60},
	}

	for _, tt := range tests {
		t.Run(tt.earlier+"/"+tt.later, func(t *testing.T) {
			got := NewEngine().Classify(tt.row)
			if len(got.Contributions) != 1 || got.Contributions[0].ItemID != tt.want {
				t.Fatalf("default order: Contributions = %v, want %s", got.Contributions, tt.want)
			}

			swapped := NewEngine(swapRules(DefaultRules(), tt.earlier, tt.later)...).Classify(tt.row)
			if len(swapped.Contributions) == 1 && swapped.Contributions[0].ItemID == tt.want {
				t.Errorf("swapping %s and %s did not change the result", tt.earlier, tt.later)
			}
		})
	}
}

func TestMappingCandidatesRouteToTheirItem(t *testing.T) {
	eng := NewEngine()

	// names the rules deliberately treat differently from the lookup table
	skip := map[string]bool{
		catalog.Yamapan: true, catalog.Chigiri: true, catalog.Danish: true,
		catalog.DanishRusk5: true, catalog.DanishRusk10: true,
		catalog.SpongeRaw: true, catalog.SpongeDone: true,
		catalog.Crumble: true, catalog.Nuts: true,
	}

	for _, m := range catalog.DefaultMapping() {
		if skip[m.ItemID] {
			continue
		}
		for _, name := range m.CandidateNames {
			got := eng.Classify(row(name, "1", ""))
			if len(got.Contributions) != 1 || got.Contributions[0].ItemID != m.ItemID {
				t.Errorf("%q routed to %v, want %s", name, got.Contributions, m.ItemID)
			}
		}
	}
}
