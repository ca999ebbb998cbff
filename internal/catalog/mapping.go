package catalog

// MappingRule lists the product names the source system is known to use for
// one item. One item id may appear in several rules.
type MappingRule struct {
	ItemID         string   `json:"itemId" yaml:"itemId"`
	CandidateNames []string `json:"candidateNames" yaml:"candidateNames"`
	Note           string   `json:"note,omitempty" yaml:"note,omitempty"`
}

var defaultMapping = []MappingRule{
	{ItemID: Choco, CandidateNames: []string{"チョコレート500g"}},
	{ItemID: WhiteOnion, CandidateNames: []string{"白玉ねぎ"}},
	{ItemID: RedOnion, CandidateNames: []string{"赤玉ねぎ"}},
	{ItemID: FruitPeach, CandidateNames: []string{"季節のフルーツ（桃）", "季節のフルーツ桃"}},
	{ItemID: FruitAngel, CandidateNames: []string{"季節のフルーツ（イチゴ）", "季節のフルーツイチゴ"}},
	{ItemID: EggS, CandidateNames: []string{"たまごS", "FC様用たまごS", "FC用たまごS"}},

	{ItemID: Crumble, CandidateNames: []string{"クランブル200g", "クランブル"}},
	{ItemID: Nuts, CandidateNames: []string{"ナッツ"}},

	{ItemID: DanishRusk5, CandidateNames: []string{"ミルフィーユデニッシュラスク"}, Note: "規格で 5枚/10枚 を判定"},
	{ItemID: DanishRusk10, CandidateNames: []string{"ミルフィーユデニッシュラスク"}, Note: "規格で 5枚/10枚 を判定"},

	{ItemID: SpongeRaw, CandidateNames: []string{"スポンジ（未加工）"}, Note: "入力数×6 をPDF表示"},
	{ItemID: SpongeDone, CandidateNames: []string{"スポンジ（加工済）"}, Note: "入力数×36 をPDF表示"},

	{ItemID: Sponge60, CandidateNames: []string{"久居用エンジェルスポンジ60個"}, Note: "発注内訳: 60 / 36 / 49 / 144"},
	{ItemID: Sponge36, CandidateNames: []string{"エンジェルスポンジ36個"}},
	{ItemID: Sponge49, CandidateNames: []string{"FCエンジェルスポンジ49【直送】", "FCエンジェルスポンジ49個【直送】"}},
	{ItemID: Sponge144, CandidateNames: []string{"エンジェルスポンジ144個", "FCエンジェルスポンジ144個", "久居用エンジェルスポンジ144個"}},

	{ItemID: ChiffonPlain, CandidateNames: []string{"シフォンケーキ6個"}},
	{ItemID: ChiffonTea, CandidateNames: []string{"紅茶シフォン6個"}},
	{ItemID: ChiffonSeason, CandidateNames: []string{"期間限定シフォン6個"}},

	{ItemID: Yamapan, CandidateNames: []string{"山パン"}},
	{ItemID: Chigiri, CandidateNames: []string{"ちぎり"}},
	{ItemID: Danish, CandidateNames: []string{"デニッシュ"}},
}

// DefaultMapping returns a copy of the built-in mapping table.
func DefaultMapping() []MappingRule {
	out := make([]MappingRule, len(defaultMapping))
	for i, r := range defaultMapping {
		r.CandidateNames = append([]string(nil), r.CandidateNames...)
		out[i] = r
	}
	return out
}

// Notes returns the static print note per item id. When several rules for the
// same id carry a note, the last one wins.
func Notes(rules []MappingRule) map[string]string {
	m := make(map[string]string)
	for _, r := range rules {
		if r.Note != "" {
			m[r.ItemID] = r.Note
		}
	}
	return m
}
