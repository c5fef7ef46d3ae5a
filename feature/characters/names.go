package characters

import (
	"math/rand"
	"strings"
)

// NameSource produces a first name and surname for a character.
type NameSource interface {
	Name(rng *rand.Rand, gender string) (name, surname string)
}

// SyllableNames builds names from fixed syllable tables.
type SyllableNames struct{}

var (
	syllableStart  = []string{"al", "bra", "cor", "da", "el", "fen", "gor", "hal", "is", "jor", "ka", "lu", "mor", "nes", "or", "pra", "quen", "ros", "sar", "tor", "ul", "vor", "wen", "yar", "zel"}
	syllableMiddle = []string{"a", "e", "i", "o", "u", "an", "ar", "en", "ir", "or", "ul", "ae"}
	maleEndings    = []string{"ric", "don", "mir", "gar", "thas", "vin", "rok", "len"}
	femaleEndings  = []string{"ra", "lia", "wyn", "na", "sa", "thea", "ris", "elle"}
	surnameEndings = []string{"hart", "wood", "stone", "vale", "brook", "field", "crest", "mere"}
)

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (SyllableNames) Name(rng *rand.Rand, gender string) (string, string) {
	endings := maleEndings
	if strings.EqualFold(gender, GenderFemale) {
		endings = femaleEndings
	}
	name := pick(rng, syllableStart) + pick(rng, syllableMiddle) + pick(rng, endings)
	surname := pick(rng, syllableStart) + pick(rng, surnameEndings)
	return title(name), title(surname)
}
