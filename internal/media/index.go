// Package media construit un index de résolution cote -> fichier média.
// Les noms de fichiers encodent la cote avec des séparateurs différents du
// texte libre ("gr3702a2.mp3", "bd_370_a.jpg"), d'où un motif distinct de
// celui de internal/recording.
package media

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

// reTagFilename : motif plus permissif que celui du texte libre. Les noms de
// fichiers utilisent espace/underscore/tiret/point comme séparateur et la
// face est collée sans ":". La prise n'est retenue qu'après une face.
var reTagFilename = regexp.MustCompile(`([a-zåäö]{1,6})[ _.-]?([0-9]{2,6})[ _-]?(?:([a-zåäö])([0-9]{1,2})?)?`)

// Index résout une clé de cote (voir recording.Tag.Key) vers un item média.
type Index struct {
	byKey map[string]*model.MediaItem
	keys  []string // ordre d'insertion, pour un Suggest déterministe
}

// BuildIndex construit l'index à partir de la liste de médias. Chaque item
// est enregistré sous trois clés de spécificité décroissante :
// préfixe+numéro+face+prise, préfixe+numéro+face, préfixe+numéro. Une clé
// déjà prise n'est jamais écrasée : le premier média (le plus spécifique)
// gagne.
func BuildIndex(items []model.MediaItem) *Index {
	idx := &Index{byKey: make(map[string]*model.MediaItem, len(items)*3)}
	for i := range items {
		it := &items[i]
		name := strings.ToLower(it.Basename())
		m := reTagFilename.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		prefix, number, side, take := m[1], m[2], m[3], m[4]
		base := prefix + number
		if side != "" {
			if take != "" {
				idx.register(base+side+take, it)
			}
			idx.register(base+side, it)
		}
		idx.register(base, it)
	}
	return idx
}

func (x *Index) register(key string, it *model.MediaItem) {
	if _, exists := x.byKey[key]; exists {
		return
	}
	x.byKey[key] = it
	x.keys = append(x.keys, key)
}

// Len : nombre de clés enregistrées.
func (x *Index) Len() int {
	return len(x.keys)
}

// Resolve cherche la clé exacte, puis dégrade : sans les chiffres finaux
// (la prise), puis sans la lettre finale (la face). Retourne nil si rien ne
// matche. Cette dégradation permet à une ligne d'annotation de référencer
// "l'enregistrement" même quand la prise exacte n'est pas encodée dans sa
// cote.
func (x *Index) Resolve(key string) *model.MediaItem {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	if it, ok := x.byKey[key]; ok {
		return it
	}
	// sans la prise
	k := strings.TrimRightFunc(key, unicode.IsDigit)
	if k != key && k != "" {
		if it, ok := x.byKey[k]; ok {
			return it
		}
	}
	// sans la face
	if r, size := utf8.DecodeLastRuneInString(k); size > 0 && unicode.IsLetter(r) {
		k = k[:len(k)-size]
		if k != "" {
			if it, ok := x.byKey[k]; ok {
				return it
			}
		}
	}
	return nil
}
