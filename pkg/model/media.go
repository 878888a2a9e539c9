package model

import "strings"

// MediaItem décrit un fichier média rattaché à un enregistrement d'archive,
// tel que renvoyé par l'API distante des notices. Le cœur ne fait que lire
// ces champs ; l'item reste la propriété de l'appelant.
type MediaItem struct {
	Source      string `json:"source"`
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

const (
	MediaTypeAudio = "audio"
	MediaTypeImage = "image"
	MediaTypePDF   = "pdf"
)

func (m MediaItem) IsAudio() bool {
	return m.Type == MediaTypeAudio
}

func (m MediaItem) IsImage() bool {
	return m.Type == MediaTypeImage
}

// Basename renvoie le nom de fichier sans chemin (le champ source peut
// contenir un chemin complet côté serveur).
func (m MediaItem) Basename() string {
	s := m.Source
	if i := strings.LastIndexAny(s, "/\\"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// DisplayName : titre s'il existe, sinon le nom de fichier.
func (m MediaItem) DisplayName() string {
	if t := strings.TrimSpace(m.Title); t != "" {
		return t
	}
	return m.Basename()
}
