package render

import (
	"github.com/patrickprogramme/arkivscribe/internal/contents"
	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

// NoteData est la structure passée au template de note.
type NoteData struct {
	Title  string
	Groups []Group
}

// Group rassemble les lignes partageant la même cote, dans l'ordre déjà trié.
type Group struct {
	Tag   string
	Media *model.MediaItem
	Rows  []contents.Row
}

// BuildNoteData regroupe des lignes (supposées triées) par cote, en conservant
// leur ordre d'apparition. Les lignes sans cote forment un groupe à part.
func BuildNoteData(title string, rows []contents.Row) NoteData {
	nd := NoteData{Title: title}
	for _, row := range rows {
		n := len(nd.Groups)
		if n == 0 || nd.Groups[n-1].Tag != row.Tag {
			nd.Groups = append(nd.Groups, Group{Tag: row.Tag, Media: row.Media})
			n++
		}
		g := &nd.Groups[n-1]
		if g.Media == nil && row.Media != nil {
			g.Media = row.Media
		}
		g.Rows = append(g.Rows, row)
	}
	return nd
}
