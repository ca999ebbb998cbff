package core

// normalize.go holds the text and number helpers the rules are built on.
//
// None of these return errors: an unreadable quantity is zero and an
// unreadable unit is zero, which the rules treat as "not this product".

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/JonMunkholm/OrderSheet/internal/catalog"
	"golang.org/x/text/width"
)

// RuskPiecesPerPack is the number of rusk pieces in one pack.
const RuskPiecesPerPack = catalog.RuskPiecesPerPack

// MaxQuantity is the largest quantity ParseQuantity accepts. Anything beyond
// it reads as 0, the same as an unreadable cell.
const MaxQuantity = 999_999

var (
	intRegex      = regexp.MustCompile(`-?\d+`)
	unitNameRegex = regexp.MustCompile(`(\d+)個`)
	unitSpecRegex = regexp.MustCompile(`(\d+)(?:\.\d+)?[/／]個`)
	nameReplacer  = strings.NewReplacer("(", "（", ")", "）", "＋", "+", "：", ":")
)

// NormalizeName folds a product name or spec cell into the form the rules
// match against: whitespace removed, full-width ASCII and half-width katakana
// folded to their canonical width, parentheses full-width, plus and colon
// half-width.
func NormalizeName(s string) string {
	s = width.Fold.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return nameReplacer.Replace(s)
}

// ParseQuantity returns the first integer found in s, or 0. Full-width digits
// are folded first, so "５" reads as 5.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(width.Fold.String(s))
	if s == "" {
		return 0
	}
	m := intRegex.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil || n > MaxQuantity || n < -MaxQuantity {
		return 0
	}
	return n
}

// RuskToPacks converts a rusk quantity that may be given in pieces into packs.
// Below one pack's worth it is already packs; exact multiples of a pack are
// pieces; anything else is assumed to be packs.
func RuskToPacks(qty int) int {
	switch {
	case qty <= 0:
		return 0
	case qty < RuskPiecesPerPack:
		return qty
	case qty%RuskPiecesPerPack == 0:
		return qty / RuskPiecesPerPack
	default:
		return qty
	}
}

// SpongeUnit extracts the per-unit pack size of an angel sponge line. The
// product name ("60個") is consulted before the spec cell ("60.00／個").
func SpongeUnit(name, spec string) int {
	if m := unitNameRegex.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := unitSpecRegex.FindStringSubmatch(spec); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}
