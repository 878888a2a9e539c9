// Package segments gère les descriptions contributives ("segments") : des
// annotations bornées dans le temps soumises par les utilisateurs, rattachées
// à un fichier média par son nom de source. C'est l'état autoritaire — à la
// différence des lignes dérivées de internal/contents, un segment survit
// d'une session à l'autre côté serveur.
//
// Un segment n'a pas d'identifiant durable : il est adressé par le couple
// (source, start). C'est fragile en cas d'éditions concurrentes, mais c'est
// le contrat existant du collaborateur REST ; on ne fabrique pas d'ID que le
// reste du système ignorerait.
package segments

import (
	"sort"

	"github.com/patrickprogramme/arkivscribe/internal/timecode"
	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

// Term : terme de vocabulaire contrôlé attaché à un segment. L'égalité se
// fait sur TermID, jamais sur le libellé (deux vocabulaires peuvent porter le
// même libellé pour des termes distincts).
type Term struct {
	Term   string `json:"term"`
	TermID string `json:"termid"`
}

// Segment : contribution utilisateur, bornée par start (obligatoire) et end
// (optionnel, "" si absent).
type Segment struct {
	Source string `json:"source"`
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	Text   string `json:"text"`
	Terms  []Term `json:"terms,omitempty"`
}

// StartSeconds : clé de tri temporelle. "2:00" doit trier avant "10:00",
// l'ordre lexical des libellés ne convient donc jamais.
func (s Segment) StartSeconds() int {
	return timecode.ToSeconds(s.Start)
}

// SortByTime retourne une copie triée par temps de départ croissant. Tri
// stable : des segments au même temps gardent leur ordre relatif.
func SortByTime(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartSeconds() < out[j].StartSeconds()
	})
	return out
}

// HasTerm : vrai si le segment porte déjà un terme de ce TermID.
func (s Segment) HasTerm(termID string) bool {
	for _, t := range s.Terms {
		if t.TermID == termID {
			return true
		}
	}
	return false
}

// ToggleTerm retourne une copie du segment avec term ajouté s'il est absent,
// retiré s'il est présent. Le segment d'origine n'est pas modifié.
func ToggleTerm(s Segment, term Term) Segment {
	out := s
	if s.HasTerm(term.TermID) {
		out.Terms = make([]Term, 0, len(s.Terms)-1)
		for _, t := range s.Terms {
			if t.TermID != term.TermID {
				out.Terms = append(out.Terms, t)
			}
		}
		return out
	}
	out.Terms = make([]Term, 0, len(s.Terms)+1)
	out.Terms = append(out.Terms, s.Terms...)
	out.Terms = append(out.Terms, term)
	return out
}

// MediaSegments : vue combinée pour un média — l'item et ses segments en
// ordre temporel croissant.
type MediaSegments struct {
	Media    model.MediaItem `json:"media"`
	Segments []Segment       `json:"segments"`
}

// BuildView regroupe les segments par source sur la liste de médias de base.
// L'ordre des groupes suit la liste de médias ; les segments dont la source
// ne correspond à aucun média sont écartés (ils appartiennent à une autre
// notice). Les entrées ne sont pas modifiées.
func BuildView(items []model.MediaItem, segs []Segment) []MediaSegments {
	out := make([]MediaSegments, 0, len(items))
	for _, it := range items {
		var mine []Segment
		for _, s := range segs {
			if s.Source == it.Source {
				mine = append(mine, s)
			}
		}
		out = append(out, MediaSegments{
			Media:    it,
			Segments: SortByTime(mine),
		})
	}
	return out
}
