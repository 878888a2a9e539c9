package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/patrickprogramme/arkivscribe/internal/contents"
	"github.com/patrickprogramme/arkivscribe/internal/fsutil"
	"github.com/patrickprogramme/arkivscribe/internal/render"
	"github.com/patrickprogramme/arkivscribe/internal/segments"
	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

var ErrUnknownOp = errors.New("opération d'instruction inconnue")

// LoadMediaList lit une liste JSON de médias. Un chemin vide est accepté :
// le découpage fonctionne sans liste, les lignes n'auront juste pas de média.
func LoadMediaList(path string) ([]model.MediaItem, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture de la liste média %s : %w", path, err)
	}
	var items []model.MediaItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("liste média %s invalide : %w", path, err)
	}
	return items, nil
}

// LoadSegments lit un fichier JSON de segments. Fichier absent = liste vide,
// pour qu'un premier -apply puisse démarrer sans fichier préexistant.
func LoadSegments(path string) ([]segments.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture des segments %s : %w", path, err)
	}
	var segs []segments.Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, fmt.Errorf("segments %s invalides : %w", path, err)
	}
	return segs, nil
}

// SaveSegments réécrit le fichier de segments de façon atomique.
func SaveSegments(path string, segs []segments.Segment) error {
	data, err := json.MarshalIndent(segs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal segments : %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(path, data, filePerm); err != nil {
		return fmt.Errorf("write segments %s : %w", path, err)
	}
	return nil
}

// instructionEnvelope : forme sur disque d'une instruction, discriminée par op.
type instructionEnvelope struct {
	Op string `json:"op"` // add | edit | delete

	Source string          `json:"source"`
	Start  string          `json:"start,omitempty"`
	End    string          `json:"end,omitempty"`
	Text   string          `json:"text,omitempty"`
	Terms  []segments.Term `json:"terms,omitempty"`

	StartFrom  string `json:"start_from,omitempty"`
	ChangeFrom string `json:"change_from,omitempty"`
	ChangeTo   string `json:"change_to,omitempty"`
	StartTo    string `json:"start_to,omitempty"`
}

// LoadInstruction lit une instruction JSON et la convertit vers le type
// concret du réconciliateur.
func LoadInstruction(path string) (segments.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture de l'instruction %s : %w", path, err)
	}
	var env instructionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("instruction %s invalide : %w", path, err)
	}

	switch env.Op {
	case "add":
		return segments.Add{
			Source: env.Source,
			Start:  env.Start,
			End:    env.End,
			Text:   env.Text,
			Terms:  env.Terms,
		}, nil
	case "edit":
		return segments.Edit{
			Source:     env.Source,
			StartFrom:  env.StartFrom,
			ChangeFrom: env.ChangeFrom,
			ChangeTo:   env.ChangeTo,
			StartTo:    env.StartTo,
			Terms:      env.Terms,
		}, nil
	case "delete":
		return segments.Delete{
			Source: env.Source,
			Start:  env.Start,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, env.Op)
	}
}

// ApplySegmentInstruction charge le fichier de segments, applique une
// instruction, et réécrit le fichier atomiquement. Retourne la liste finale.
func ApplySegmentInstruction(segmentsPath, instructionPath string) ([]segments.Segment, error) {
	segs, err := LoadSegments(segmentsPath)
	if err != nil {
		return nil, err
	}
	instr, err := LoadInstruction(instructionPath)
	if err != nil {
		return nil, err
	}
	next, err := segments.Reconcile(segs, instr)
	if err != nil {
		return nil, fmt.Errorf("reconcile : %w", err)
	}
	if err := SaveSegments(segmentsPath, next); err != nil {
		return nil, err
	}
	return next, nil
}

// BuildSegmentView charge segments + liste média et produit la vue groupée
// par média en JSON indenté.
func BuildSegmentView(segmentsPath, mediaPath string) ([]byte, error) {
	segs, err := LoadSegments(segmentsPath)
	if err != nil {
		return nil, err
	}
	items, err := LoadMediaList(mediaPath)
	if err != nil {
		return nil, err
	}
	view := segments.BuildView(items, segs)
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal view : %w", err)
	}
	return append(data, '\n'), nil
}

// RenderRows produit la sortie des lignes dans le format demandé :
//   - txt  : une ligne par Row, tabulée, temps en HH:MM:SS à largeur fixe
//   - md   : note markdown via le template
//   - json : liste brute indentée
func RenderRows(r *render.Renderer, rows []contents.Row, format model.Format, title string) ([]byte, error) {
	switch format {
	case model.FormatTXT:
		return renderRowsText(rows), nil
	case model.FormatMARKDOWN:
		if r == nil {
			return nil, fmt.Errorf("pas de renderer pour le format md")
		}
		return r.Render("contents_note.md.tmpl", render.BuildNoteData(title, rows))
	case model.FormatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal rows : %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("format non géré : %s", format)
	}
}

func renderRowsText(rows []contents.Row) []byte {
	var buf bytes.Buffer
	for _, row := range rows {
		tag := row.Tag
		if tag == "" {
			tag = "-"
		}
		fmt.Fprintf(&buf, "%s\t%s\t%s", tag, row.Seconds.TimestampHHMMSS(), row.Text)
		if row.Media != nil {
			fmt.Fprintf(&buf, "\t[%s]", row.Media.Basename())
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
