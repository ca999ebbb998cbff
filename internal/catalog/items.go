package catalog

// Canonical item ids. The classification rules route to these ids, so a
// catalog loaded from disk must contain exactly this set.
const (
	Choco         = "choco"
	WhiteOnion    = "white_onion"
	RedOnion      = "red_onion"
	FruitPeach    = "fruit_peach"
	FruitAngel    = "fruit_angel"
	EggS          = "egg_s"
	Crumble       = "crumble"
	RuskCoffee    = "rusk_coffee"
	RuskPlain     = "rusk_plain"
	Nuts          = "nuts"
	DanishRusk5   = "danish_rusk_5"
	DanishRusk10  = "danish_rusk_10"
	SpongeRaw     = "sponge_raw"
	SpongeDone    = "sponge_done"
	Sponge60      = "sponge_60"
	Sponge36      = "sponge_36"
	Sponge49      = "sponge_49"
	Sponge144     = "sponge_144"
	Yamapan       = "yamapan"
	Chigiri       = "chigiri"
	Danish        = "danish"
	ChiffonPlain  = "plain"
	ChiffonTea    = "tea"
	ChiffonSeason = "season"
)

// RuskPiecesPerPack is the number of rusk pieces in one pack. Rusk orders and
// stock are counted in packs.
const RuskPiecesPerPack = 48

var orderOnly = map[string]bool{
	Sponge60:  true,
	Sponge36:  true,
	Sponge49:  true,
	Sponge144: true,
}

var defaultItems = []Item{
	{Choco, "チョコレート500g", Cold, "適正在庫:12袋"},
	{WhiteOnion, "白玉ねぎ", Cold, "適正在庫:2セット"},
	{RedOnion, "赤玉ねぎ", Cold, "適正在庫:2セット"},
	{FruitPeach, "季節のフルーツ（桃）", Cold, "適正在庫:—"},
	{FruitAngel, "季節のフルーツ（イチゴ）", Cold, "適正在庫:—"},
	{EggS, "たまごS", Cold, "適正在庫:6箱"},

	{Crumble, "クランブル", Ambient, "適正在庫:20個"},
	{RuskCoffee, "ラスク（珈琲）", Ambient, "換算:×48（PDF表示）"},
	{RuskPlain, "ラスク（プレーン）", Ambient, "換算:×48（PDF表示）"},
	{Nuts, "ナッツ", Ambient, "適正在庫:15個"},

	{DanishRusk5, "デニッシュラスク(5枚)", Frozen, "適正在庫:??"},
	{DanishRusk10, "デニッシュラスク(10枚)", Frozen, "適正在庫:??"},
	{SpongeRaw, "スポンジ（未加工）", Frozen, "換算:×6（PDF表示）"},
	{SpongeDone, "スポンジ（加工済）", Frozen, "換算:×36（PDF表示）"},
	{Sponge60, "スポンジ（60）", Frozen, "—"},
	{Sponge36, "スポンジ（36）", Frozen, "—"},
	{Sponge49, "スポンジ（49）", Frozen, "—"},
	{Sponge144, "スポンジ（144）", Frozen, "—"},
	{Yamapan, "山パン", Frozen, "適正在庫:9本"},
	{Chigiri, "ちぎり", Frozen, "適正在庫:13番重"},
	{Danish, "デニッシュ", Frozen, "適正在庫:16本"},
	{ChiffonPlain, "プレーン", Frozen, "適正在庫:8台ずつ"},
	{ChiffonTea, "紅茶", Frozen, "適正在庫:8台ずつ"},
	{ChiffonSeason, "季節", Frozen, "適正在庫:8台ずつ"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustNew(defaultItems)
}
