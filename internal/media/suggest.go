package media

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

// DefaultSuggestThreshold : en dessous, une suggestion est considérée trop
// hasardeuse pour être montrée.
const DefaultSuggestThreshold = 0.85

// Suggest cherche la clé indexée la plus proche de key (Jaro-Winkler) et
// retourne l'item correspondant avec son score, ou (nil, 0) si aucun score
// n'atteint threshold. Resolve ne passe jamais par ici : Suggest sert
// uniquement aux affordances "vouliez-vous dire" de la couche d'affichage.
// En cas d'égalité de score, la clé enregistrée en premier gagne.
func (x *Index) Suggest(key string, threshold float64) (*model.MediaItem, float64) {
	if key == "" || len(x.keys) == 0 {
		return nil, 0
	}
	if threshold <= 0 {
		threshold = DefaultSuggestThreshold
	}

	jw := metrics.NewJaroWinkler()
	var best string
	var bestScore float64
	for _, k := range x.keys {
		score := strutil.Similarity(key, k, jw)
		if score > bestScore {
			bestScore = score
			best = k
		}
	}
	if best == "" || bestScore < threshold {
		return nil, 0
	}
	return x.byKey[best], bestScore
}
