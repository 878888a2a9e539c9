package segments

import (
	"errors"
	"testing"
)

func TestAddAppendsAndSorts(t *testing.T) {
	existing := []Segment{
		{Source: "gr3702a.mp3", Start: "2:00", Text: "mitt"},
	}
	next, err := Reconcile(existing, Add{Source: "gr3702a.mp3", Start: "1:00", Text: "först"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("got %d segments; want 2", len(next))
	}
	if next[0].Start != "1:00" || next[1].Start != "2:00" {
		t.Errorf("ordre = %q, %q; want 1:00, 2:00", next[0].Start, next[1].Start)
	}
	// l'entrée n'est pas modifiée (réducteur pur)
	if len(existing) != 1 || existing[0].Start != "2:00" {
		t.Errorf("existing modifié: %+v", existing)
	}
}

func TestAddDuplicateStart(t *testing.T) {
	existing := []Segment{{Source: "gr3702a.mp3", Start: "1:00", Text: "x"}}
	_, err := Reconcile(existing, Add{Source: "gr3702a.mp3", Start: "1:00", Text: "y"})
	if !errors.Is(err, ErrDuplicateStart) {
		t.Fatalf("err = %v; want ErrDuplicateStart", err)
	}
}

func TestAddSameStartOtherSourceIsFine(t *testing.T) {
	existing := []Segment{{Source: "gr3702a.mp3", Start: "1:00", Text: "x"}}
	next, err := Reconcile(existing, Add{Source: "gr3702b.mp3", Start: "1:00", Text: "y"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(next) != 2 {
		t.Errorf("got %d segments; want 2", len(next))
	}
}

func TestEditAndMove(t *testing.T) {
	existing := []Segment{{Source: "gr3702a.mp3", Start: "1:00", Text: "old"}}
	next, err := Reconcile(existing, Edit{
		Source:    "gr3702a.mp3",
		StartFrom: "1:00",
		ChangeTo:  "new text",
		StartTo:   "2:00",
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("got %d segments; want 1", len(next))
	}
	if next[0].Start != "2:00" || next[0].Text != "new text" {
		t.Errorf("segment = %+v", next[0])
	}
	// le déplacement ne doit pas se collisionner avec lui-même : déjà
	// couvert ci-dessus (seul segment). Cas explicite avec un voisin :
	existing = append(existing, Segment{Source: "gr3702a.mp3", Start: "3:00", Text: "nabo"})
	if _, err := Reconcile(existing, Edit{
		Source: "gr3702a.mp3", StartFrom: "1:00", ChangeTo: "t", StartTo: "3:00",
	}); !errors.Is(err, ErrDuplicateStart) {
		t.Errorf("déplacement sur un voisin: err = %v; want ErrDuplicateStart", err)
	}
}

func TestEditInPlaceKeepsStart(t *testing.T) {
	existing := []Segment{{Source: "gr3702a.mp3", Start: "1:00", Text: "old", End: "1:30"}}
	next, err := Reconcile(existing, Edit{
		Source: "gr3702a.mp3", StartFrom: "1:00", ChangeFrom: "old", ChangeTo: "edited",
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if next[0].Start != "1:00" || next[0].Text != "edited" || next[0].End != "1:30" {
		t.Errorf("segment = %+v", next[0])
	}
}

func TestEditMissingSegment(t *testing.T) {
	_, err := Reconcile(nil, Edit{StartFrom: "1:00", ChangeTo: "x"})
	if !errors.Is(err, ErrSegmentNotFound) {
		t.Fatalf("err = %v; want ErrSegmentNotFound", err)
	}
}

func TestDeleteMissingSegment(t *testing.T) {
	_, err := Reconcile(nil, Delete{Start: "9:99"})
	if !errors.Is(err, ErrSegmentNotFound) {
		t.Fatalf("err = %v; want ErrSegmentNotFound", err)
	}
}

func TestDeleteKeepsSiblings(t *testing.T) {
	existing := []Segment{
		{Source: "gr3702a.mp3", Start: "1:00", Text: "a"},
		{Source: "gr3702a.mp3", Start: "2:00", Text: "b"},
		{Source: "gr3702a.mp3", Start: "3:00", Text: "c"},
	}
	next, err := Reconcile(existing, Delete{Source: "gr3702a.mp3", Start: "2:00"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(next) != 2 || next[0].Text != "a" || next[1].Text != "c" {
		t.Errorf("voisins corrompus: %+v", next)
	}
}

func TestSortByTimeIsNumericNotLexical(t *testing.T) {
	segs := []Segment{
		{Start: "10:00", Text: "tio"},
		{Start: "2:00", Text: "två"},
	}
	sorted := SortByTime(segs)
	if sorted[0].Start != "2:00" || sorted[1].Start != "10:00" {
		t.Errorf("ordre = %q, %q; \"2:00\" < \"10:00\" numériquement", sorted[0].Start, sorted[1].Start)
	}
	// l'entrée reste intacte
	if segs[0].Start != "10:00" {
		t.Errorf("entrée modifiée: %+v", segs)
	}
}

func TestToggleTermByID(t *testing.T) {
	seg := Segment{Start: "1:00", Terms: []Term{{Term: "visa", TermID: "t1"}}}

	// même libellé, autre id -> ajout, pas de retrait
	next := ToggleTerm(seg, Term{Term: "visa", TermID: "t2"})
	if len(next.Terms) != 2 {
		t.Fatalf("terms = %+v; want 2 (égalité par termid, pas par libellé)", next.Terms)
	}

	// même id -> retrait
	next = ToggleTerm(next, Term{Term: "n'importe", TermID: "t1"})
	if len(next.Terms) != 1 || next.Terms[0].TermID != "t2" {
		t.Errorf("terms = %+v; want [t2]", next.Terms)
	}

	// l'original n'est pas touché
	if len(seg.Terms) != 1 {
		t.Errorf("segment d'origine modifié: %+v", seg.Terms)
	}
}

