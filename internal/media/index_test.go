package media

import (
	"testing"

	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

func audio(source string) model.MediaItem {
	return model.MediaItem{Source: source, Type: model.MediaTypeAudio}
}

func TestResolveExactKey(t *testing.T) {
	idx := BuildIndex([]model.MediaItem{audio("gr3702a2.mp3")})
	it := idx.Resolve("gr3702a2")
	if it == nil || it.Source != "gr3702a2.mp3" {
		t.Fatalf("Resolve exact = %v", it)
	}
}

func TestResolveDegradesGracefully(t *testing.T) {
	idx := BuildIndex([]model.MediaItem{audio("gr3702a2.mp3")})

	// prise inconnue -> retombe sur la face
	if it := idx.Resolve("gr3702a3"); it == nil || it.Source != "gr3702a2.mp3" {
		t.Errorf("fallback prise: got %v", it)
	}
	// face inconnue -> retombe sur préfixe+numéro
	if it := idx.Resolve("gr3702c"); it == nil || it.Source != "gr3702a2.mp3" {
		t.Errorf("fallback face: got %v", it)
	}
	// cote sans face ni prise
	if it := idx.Resolve("gr3702"); it == nil || it.Source != "gr3702a2.mp3" {
		t.Errorf("clé de base: got %v", it)
	}
	// rien de commun -> nil
	if it := idx.Resolve("xx9999"); it != nil {
		t.Errorf("Resolve(xx9999) = %v; want nil", it)
	}
	if it := idx.Resolve(""); it != nil {
		t.Errorf("Resolve(\"\") = %v; want nil", it)
	}
}

func TestEarlierItemWinsTies(t *testing.T) {
	idx := BuildIndex([]model.MediaItem{
		audio("gr3702a1.mp3"),
		audio("gr3702a2.mp3"),
	})
	// les clés partagées (gr3702a, gr3702) restent sur le premier item
	if it := idx.Resolve("gr3702a"); it == nil || it.Source != "gr3702a1.mp3" {
		t.Errorf("clé partagée gr3702a: got %v", it)
	}
	if it := idx.Resolve("gr3702"); it == nil || it.Source != "gr3702a1.mp3" {
		t.Errorf("clé partagée gr3702: got %v", it)
	}
	// la clé exacte du second reste atteignable
	if it := idx.Resolve("gr3702a2"); it == nil || it.Source != "gr3702a2.mp3" {
		t.Errorf("clé exacte du second item: got %v", it)
	}
}

func TestFilenameSeparators(t *testing.T) {
	tests := []struct {
		file string
		key  string
	}{
		{"gr3702a2.mp3", "gr3702a2"},
		{"bd_370_a.jpg", "bd370a"},
		{"sks 12345.pdf", "sks12345"},
		{"ulma-102-b1.wav", "ulma102b1"},
		{"arkiv/ovr102.mp3", "ovr102"}, // le chemin est ignoré
	}
	for _, tc := range tests {
		idx := BuildIndex([]model.MediaItem{audio(tc.file)})
		if it := idx.Resolve(tc.key); it == nil {
			t.Errorf("Resolve(%q) depuis %q = nil", tc.key, tc.file)
		}
	}
}

func TestFilenameWithoutTagIsSkipped(t *testing.T) {
	idx := BuildIndex([]model.MediaItem{audio("12345.mp3"), audio("notes.txt")})
	if idx.Len() != 0 {
		t.Errorf("index devrait être vide, %d clés", idx.Len())
	}
}

func TestSuggestNearestKey(t *testing.T) {
	idx := BuildIndex([]model.MediaItem{
		audio("gr3702a2.mp3"),
		audio("bd370b.mp3"),
	})

	it, score := idx.Suggest("gr3072a2", 0.85) // chiffres intervertis
	if it == nil {
		t.Fatal("Suggest returned nil for a near key")
	}
	if it.Source != "gr3702a2.mp3" {
		t.Errorf("Suggest = %q; want gr3702a2.mp3", it.Source)
	}
	if score < 0.85 || score > 1.0 {
		t.Errorf("score hors bornes: %v", score)
	}

	// clé sans rapport -> rien
	if it, _ := idx.Suggest("zzz000", 0.85); it != nil {
		t.Errorf("Suggest(zzz000) = %v; want nil", it)
	}
	if it, _ := idx.Suggest("", 0.85); it != nil {
		t.Errorf("Suggest(\"\") = %v; want nil", it)
	}
}
