package segments

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateStart : un ajout (ou un déplacement) entrerait en
	// collision avec le temps de départ d'un segment existant sur la même
	// source. Récupérable : demander un autre temps à l'utilisateur.
	ErrDuplicateStart = errors.New("un segment existe déjà à ce temps de départ")

	// ErrSegmentNotFound : une édition ou suppression référence un temps de
	// départ inconnu. Récupérable : la vue cliente est périmée (un autre
	// contributeur est passé avant), il faut re-fetcher.
	ErrSegmentNotFound = errors.New("aucun segment à ce temps de départ")
)

// Instruction est l'union fermée des opérations du réconciliateur.
type Instruction interface {
	isInstruction()
}

// Add insère un nouveau segment. Aucune identité n'est attribuée ici :
// l'identité reste (source, start) par convention.
type Add struct {
	Source string `json:"source"`
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	Text   string `json:"text"`
	Terms  []Term `json:"terms,omitempty"`
}

// Edit modifie le segment repéré par (source, start_from). Les paires
// from/to suivent le contrat du formulaire : *_from identifie l'ancienne
// valeur, *_to la nouvelle. ChangeFrom est purement indicatif et n'est pas
// vérifié. StartTo non vide et différent de StartFrom = déplacement
// temporel, re-vérifié contre les collisions (hors segment déplacé).
type Edit struct {
	Source     string `json:"source"`
	StartFrom  string `json:"start_from"`
	ChangeFrom string `json:"change_from,omitempty"`
	ChangeTo   string `json:"change_to"`
	StartTo    string `json:"start_to,omitempty"`
	Terms      []Term `json:"terms,omitempty"`
}

// Delete supprime le segment repéré par (source, start).
type Delete struct {
	Source string `json:"source"`
	Start  string `json:"start"`
}

func (Add) isInstruction()    {}
func (Edit) isInstruction()   {}
func (Delete) isInstruction() {}

// sameSource : les listes passées à Reconcile sont en général déjà filtrées
// par média ; quand l'instruction ne précise pas de source, on accepte tout
// segment de la liste.
func sameSource(instrSource, segSource string) bool {
	return instrSource == "" || instrSource == segSource
}

// find retourne l'index du segment adressé par (source, start), comparaison
// exacte des libellés — c'est le contrat d'adressage, pas une comparaison
// temporelle. -1 si absent.
func find(segs []Segment, source, start string) int {
	for i, s := range segs {
		if sameSource(source, s.Source) && s.Start == start {
			return i
		}
	}
	return -1
}

// Reconcile applique une instruction à la liste existante et retourne la
// liste suivante, triée par temps. Réducteur pur : existing n'est jamais
// modifié, le résultat est une nouvelle slice.
func Reconcile(existing []Segment, instr Instruction) ([]Segment, error) {
	switch in := instr.(type) {
	case Add:
		return reconcileAdd(existing, in)
	case Edit:
		return reconcileEdit(existing, in)
	case Delete:
		return reconcileDelete(existing, in)
	default:
		return nil, fmt.Errorf("instruction inconnue: %T", instr)
	}
}

func reconcileAdd(existing []Segment, in Add) ([]Segment, error) {
	if i := find(existing, in.Source, in.Start); i >= 0 {
		return nil, fmt.Errorf("%w: %s @ %s", ErrDuplicateStart, in.Source, in.Start)
	}
	next := make([]Segment, 0, len(existing)+1)
	next = append(next, existing...)
	next = append(next, Segment{
		Source: in.Source,
		Start:  in.Start,
		End:    in.End,
		Text:   in.Text,
		Terms:  append([]Term(nil), in.Terms...),
	})
	return SortByTime(next), nil
}

func reconcileEdit(existing []Segment, in Edit) ([]Segment, error) {
	i := find(existing, in.Source, in.StartFrom)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s @ %s", ErrSegmentNotFound, in.Source, in.StartFrom)
	}

	next := make([]Segment, len(existing))
	copy(next, existing)

	seg := next[i]
	seg.Text = in.ChangeTo
	if in.Terms != nil {
		seg.Terms = append([]Term(nil), in.Terms...)
	}

	if in.StartTo != "" && in.StartTo != in.StartFrom {
		// déplacement temporel : collision re-vérifiée contre les autres
		// segments, jamais contre celui qu'on déplace
		for j, other := range existing {
			if j == i {
				continue
			}
			if sameSource(in.Source, other.Source) && other.Start == in.StartTo {
				return nil, fmt.Errorf("%w: %s @ %s", ErrDuplicateStart, in.Source, in.StartTo)
			}
		}
		seg.Start = in.StartTo
	}

	next[i] = seg
	return SortByTime(next), nil
}

func reconcileDelete(existing []Segment, in Delete) ([]Segment, error) {
	i := find(existing, in.Source, in.Start)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s @ %s", ErrSegmentNotFound, in.Source, in.Start)
	}
	next := make([]Segment, 0, len(existing)-1)
	next = append(next, existing[:i]...)
	next = append(next, existing[i+1:]...)
	return SortByTime(next), nil
}
