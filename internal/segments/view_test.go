package segments

import (
	"testing"

	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

func TestBuildViewGroupsBySourceInMediaOrder(t *testing.T) {
	media := []model.MediaItem{
		{Source: "gr3702a.mp3", Type: model.MediaTypeAudio},
		{Source: "gr3702b.mp3", Type: model.MediaTypeAudio},
	}
	segs := []Segment{
		{Source: "gr3702b.mp3", Start: "0:30", Text: "b-tidig"},
		{Source: "gr3702a.mp3", Start: "10:00", Text: "a-sen"},
		{Source: "gr3702a.mp3", Start: "2:00", Text: "a-tidig"},
		{Source: "okand.mp3", Start: "0:01", Text: "orphelin"},
	}

	view := BuildView(media, segs)
	if len(view) != 2 {
		t.Fatalf("got %d groupes; want 2", len(view))
	}
	if view[0].Media.Source != "gr3702a.mp3" || view[1].Media.Source != "gr3702b.mp3" {
		t.Errorf("ordre des groupes: %q, %q", view[0].Media.Source, view[1].Media.Source)
	}
	a := view[0].Segments
	if len(a) != 2 || a[0].Text != "a-tidig" || a[1].Text != "a-sen" {
		t.Errorf("groupe a mal trié: %+v", a)
	}
	if len(view[1].Segments) != 1 {
		t.Errorf("groupe b: %+v", view[1].Segments)
	}
	// un segment sans média correspondant est écarté de la vue
	for _, g := range view {
		for _, s := range g.Segments {
			if s.Source == "okand.mp3" {
				t.Error("segment orphelin présent dans la vue")
			}
		}
	}
}

func TestBuildViewEmptyMediaStillOneGroupPerItem(t *testing.T) {
	media := []model.MediaItem{{Source: "gr3702a.mp3", Type: model.MediaTypeAudio}}
	view := BuildView(media, nil)
	if len(view) != 1 || len(view[0].Segments) != 0 {
		t.Errorf("view = %+v", view)
	}
}
