// Package contents découpe le champ legacy "innehåll" d'une notice — texte
// libre mêlant cotes d'enregistrement, timestamps inline et descriptions,
// ponctué de façon incohérente — en lignes structurées et navigables.
//
// Le découpage est volontairement tolérant : un tokenizer à base de regex
// avec une branche de repli à couverture totale (on émet toujours quelque
// chose), jamais une grammaire stricte. Les données d'archive réelles ne
// respectent aucun schéma et l'interface doit toujours pouvoir afficher le
// texte.
package contents

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/patrickprogramme/arkivscribe/internal/media"
	"github.com/patrickprogramme/arkivscribe/internal/recording"
	"github.com/patrickprogramme/arkivscribe/internal/timecode"
	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

// Row est une ligne dérivée du blob de contenu. Reconstituée à chaque parse,
// jamais persistée ; aucune identité au-delà de sa position après tri.
type Row struct {
	Tag     string           `json:"tag,omitempty"` // forme d'affichage de la cote, "" si inconnue
	Start   string           `json:"start"`         // libellé normalisé, ex. "0:57"
	Seconds model.Seconds    `json:"seconds"`
	Text    string           `json:"text"`
	Media   *model.MediaItem `json:"media,omitempty"`
}

// reTimestamp : "M:SS" ou "H:MM:SS", parenthèses optionnelles. Les secondes
// font toujours 2 chiffres dans le balayage global ; les libellés plus
// laxistes ("1:5") ne sont normalisés que lorsqu'ils arrivent seuls via
// timecode.NormalizeLabel.
var reTimestamp = regexp.MustCompile(`\(?(?:[0-9]{1,2}:)?[0-9]{1,2}:[0-9]{2}\)?`)

var reSpaces = regexp.MustCompile(`\s+`)

// normalizeBlob remplace les fins de ligne \r\n / \r par \n et les espaces
// insécables par des espaces simples.
var normalizeBlob = strings.NewReplacer("\r\n", "\n", "\r", "\n", " ", " ")

// leadingJunk : ponctuation de tête à retirer du texte d'une ligne.
const leadingJunk = ";:,-– \t\n"

// Extractor porte la locale utilisée pour l'ordre des groupes de cotes.
// Les champs sont figés à la construction ; toutes les méthodes sont pures
// vis-à-vis de l'état de l'Extractor et sûres en appels concurrents. Le
// collator lui-même est construit à chaque parse : collate.Collator mute ses
// itérateurs internes pendant CompareString et ne doit pas être partagé.
type Extractor struct {
	lang language.Tag
}

// NewExtractor construit un Extractor triant les cotes selon lang.
func NewExtractor(lang language.Tag) *Extractor {
	return &Extractor{lang: lang}
}

// defaultExtractor : le fonds utilise ÅÄÖ, donc collation suédoise par défaut.
var defaultExtractor = NewExtractor(language.Swedish)

// ParseContentsToRows parse le blob brut avec la collation par défaut, en
// construisant l'index média à la volée.
func ParseContentsToRows(raw string, items []model.MediaItem) []Row {
	return defaultExtractor.Rows(raw, media.BuildIndex(items))
}

// Rows découpe le blob en lignes. Ne retourne jamais d'erreur : au pire, une
// seule ligne sans cote à 0:00 portant tout le texte.
func (e *Extractor) Rows(raw string, idx *media.Index) []Row {
	text := normalizeBlob.Replace(raw)

	// chaque bloc séparé par "|" correspond nominalement à une face
	// d'enregistrement ; sans "|", le texte entier est un seul bloc
	blocks := strings.Split(text, "|")

	var rows []Row
	// convention d'archive : une cote énoncée une fois vaut pour les blocs
	// suivants jusqu'à être remplacée
	var carried *recording.Tag

	for _, block := range blocks {
		tag := carried
		if t, start, end := recording.ParseTagIndex(block); t != nil && isJunkPrefix(block[:start]) {
			tag = t
			carried = t
			block = block[:start] + block[end:]
		}
		rows = append(rows, e.blockRows(block, tag, idx)...)
	}

	// tri stable : cote (collation locale), puis secondes. Les lignes sans
	// cote comparent avec la chaîne vide et se regroupent donc entre elles.
	// Collator local à l'appel : l'état de comparaison ne survit pas au parse.
	coll := collate.New(e.lang)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := coll.CompareString(rows[i].Tag, rows[j].Tag); c != 0 {
			return c < 0
		}
		return rows[i].Seconds < rows[j].Seconds
	})
	return rows
}

// blockRows émet les lignes d'un bloc : une par timestamp trouvé, ou une
// seule ligne 0:00 de repli quand le bloc n'en contient aucun.
func (e *Extractor) blockRows(block string, tag *recording.Tag, idx *media.Index) []Row {
	item := idx.Resolve(tag.Key())

	matches := reTimestamp.FindAllStringIndex(block, -1)
	if len(matches) == 0 {
		text := cleanRowText(block)
		if text == "" && tag == nil {
			// bloc entièrement vide (ex. "|" final) : rien à afficher
			return nil
		}
		return []Row{{
			Tag:     tag.String(),
			Start:   "0:00",
			Seconds: 0,
			Text:    text,
			Media:   item,
		}}
	}

	rows := make([]Row, 0, len(matches))
	for i, m := range matches {
		label := block[m[0]:m[1]]
		end := len(block)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		rows = append(rows, Row{
			Tag:     tag.String(),
			Start:   timecode.NormalizeLabel(label),
			Seconds: model.Seconds(timecode.ToSeconds(label)),
			Text:    cleanRowText(block[m[1]:end]),
			Media:   item,
		})
	}
	return rows
}

// isJunkPrefix : vrai si s ne contient que espaces/ponctuation, c'est-à-dire
// si une cote trouvée juste après est bien "en tête de bloc".
func isJunkPrefix(s string) bool {
	return strings.TrimLeft(s, leadingJunk+".") == ""
}

// cleanRowText retire la ponctuation de tête et replie les blancs internes
// en espaces simples.
func cleanRowText(s string) string {
	s = strings.TrimLeft(s, leadingJunk)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
