// Package recording reconnaît les cotes d'enregistrement ("recording tags")
// du fonds d'archive, par exemple "Gr3702:a2" : préfixe de lettres, numéro
// d'accession, face optionnelle et numéro de prise optionnel.
package recording

import (
	"regexp"
	"strings"
)

// reTagText : motif pour le texte libre des annotations. Le préfixe de
// lettres est obligatoire (un nombre nu ne doit jamais matcher), le
// séparateur éventuel est restreint (pas d'espace : "band 12" n'est pas une
// cote), la face est introduite par ":" et la prise n'existe qu'après une
// face. Lettres nordiques incluses.
var reTagText = regexp.MustCompile(`(?i)([a-zåäö]{1,6})[_.-]?([0-9]{2,6})(?::([a-zåäö])([0-9]{1,2})?)?`)

// Tag identifie un enregistrement physique au sein d'une unité d'archive
// multi-supports.
type Tag struct {
	Prefix string // toujours stocké en majuscules
	Number string
	Side   string // une lettre, en minuscules; "" si absente
	Take   string // 1-2 chiffres; "" si absente
}

// ParseTag retourne la première cote trouvée dans text, ou nil si aucune.
func ParseTag(text string) *Tag {
	t, _, _ := ParseTagIndex(text)
	return t
}

// ParseTagIndex retourne la première cote trouvée et les bornes [start,end)
// du match dans text, pour que l'appelant puisse retirer la sous-chaîne.
// (nil, -1, -1) si aucune cote.
func ParseTagIndex(text string) (*Tag, int, int) {
	m := reTagText.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, -1, -1
	}
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}
	t := &Tag{
		Prefix: strings.ToUpper(group(1)),
		Number: group(2),
		Side:   strings.ToLower(group(3)),
		Take:   group(4),
	}
	return t, m[0], m[1]
}

// Key : concaténation minuscule préfixe+numéro+face+prise (parties absentes
// omises). Sert uniquement de clé d'égalité/lookup, jamais à l'affichage.
func (t *Tag) Key() string {
	if t == nil {
		return ""
	}
	return strings.ToLower(t.Prefix + t.Number + t.Side + t.Take)
}

// SideKey : clé sans la prise. Deux cotes désignent "le même enregistrement"
// si préfixe+numéro+face coïncident, la prise mise à part.
func (t *Tag) SideKey() string {
	if t == nil {
		return ""
	}
	return strings.ToLower(t.Prefix + t.Number + t.Side)
}

// String : forme canonique d'affichage. Préfixe en majuscules, numéro, puis
// ":" + face + prise si la face existe. Nil-safe ("" pour nil).
func (t *Tag) String() string {
	if t == nil {
		return ""
	}
	s := t.Prefix + t.Number
	if t.Side != "" {
		s += ":" + t.Side + t.Take
	}
	return s
}

// SameRecording : vrai si a et b nomment le même enregistrement physique
// (préfixe+numéro+face), indépendamment de la prise.
func SameRecording(a, b *Tag) bool {
	if a == nil || b == nil {
		return false
	}
	return a.SideKey() == b.SideKey()
}
