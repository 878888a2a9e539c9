package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/arkivscribe/internal/clipboard"
	"github.com/patrickprogramme/arkivscribe/internal/config"
	"github.com/patrickprogramme/arkivscribe/internal/contents"
	"github.com/patrickprogramme/arkivscribe/internal/fsutil"
	"github.com/patrickprogramme/arkivscribe/internal/media"
	"github.com/patrickprogramme/arkivscribe/internal/render"
	"github.com/patrickprogramme/arkivscribe/internal/ui"
	"github.com/patrickprogramme/arkivscribe/pkg/model"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath   string
	ContentsPath string // fichier texte "innehåll" à découper
	MediaPath    string // liste JSON des fichiers média de la notice
	SegmentsPath string // fichier JSON de segments
	ApplyPath    string // instruction JSON à réconcilier dans SegmentsPath
	View         bool   // produire la vue segments groupée par média
	Format       string // txt | md | json, prioritaire sur la config
	OutDir       string // répertoire de sortie, prioritaire sur la config
	Copy         bool   // copier la sortie dans le presse-papier
}

// App orchestre les différentes dépendances (UI, FS, renderer...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	renderer *render.Renderer
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, renderer *render.Renderer) *App {
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		renderer: renderer,
	}
}

// Run choisit le mode d'exécution d'après les flags :
//   - -segments + -apply : réconcilier une instruction dans le fichier de segments
//   - -segments + -view  : produire la vue groupée par média
//   - sinon              : découper un fichier de contenu en lignes
func (a *App) Run(ctx context.Context) error {
	switch {
	case a.flags.SegmentsPath != "" && a.flags.ApplyPath != "":
		return a.runApply(ctx)
	case a.flags.SegmentsPath != "" && a.flags.View:
		return a.runView(ctx)
	case a.flags.SegmentsPath != "":
		return fmt.Errorf("-segments requiert -apply ou -view")
	default:
		return a.runRows(ctx)
	}
}

// runRows exécute le flux principal : lire le blob de contenu, le découper en
// lignes triées, et produire la sortie au format demandé.
func (a *App) runRows(ctx context.Context) error {
	// Récupération du chemin : priorité flag > prompt
	interactive := false
	contentsPath := a.flags.ContentsPath
	if contentsPath == "" {
		p, err := a.ui.GetExistingFilePath(ctx, "Chemin du fichier de contenu à découper")
		if err != nil {
			return fmt.Errorf("get contents path: %w", err)
		}
		contentsPath = p
		interactive = true
	}

	raw, err := os.ReadFile(contentsPath)
	if err != nil {
		return fmt.Errorf("lecture du fichier de contenu : %w", err)
	}

	items, err := LoadMediaList(a.flags.MediaPath)
	if err != nil {
		return fmt.Errorf("load media list: %w", err)
	}
	idx := media.BuildIndex(items)

	extractor := contents.NewExtractor(a.cfg.CollationTag())
	rows := extractor.Rows(string(raw), idx)

	// signaler les cotes sans média, avec suggestion de correction si possible
	if a.cfg.SuggestUnresolved {
		a.reportUnresolved(ctx, rows, idx)
	}

	format, err := a.resolveFormat()
	if err != nil {
		return err
	}

	title := noteTitle(contentsPath)
	content, err := RenderRows(a.renderer, rows, format, title)
	if err != nil {
		return fmt.Errorf("render rows: %w", err)
	}

	a.ui.PrintInfo(ctx, string(content))

	// sauvegarde sur disque
	if a.cfg.SaveRows || a.flags.OutDir != "" {
		outPath, err := a.saveOutput(title, format.Extension(), content)
		if err != nil {
			return fmt.Errorf("save rows: %w", err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Lignes écrites dans :\n%s", outPath))
	}

	// copie dans le presse-papier + vérification ; réservée aux formats
	// textuels, le JSON est destiné aux fichiers
	if (a.flags.Copy || a.cfg.CopyToClipboard) && format.IsTextual() && len(content) > 0 {
		if err := clipboard.WriteAll(string(content)); err != nil {
			return fmt.Errorf("copie presse-papier : %w", err)
		}
		if !clipboard.ClipboardEquals(string(content)) {
			a.ui.PrintError(ctx, "warning: le presse-papier ne correspond pas au contenu copié")
		} else {
			a.ui.PrintInfo(ctx, "Sortie copiée dans le presse-papier.")
		}
	}

	if interactive {
		// Attendre terminaison (Entrée OU Ctrl+C) via UI
		return a.ui.WaitForExit(ctx)
	}
	return nil
}

// runApply applique une instruction (add/edit/delete) au fichier de segments,
// et réécrit le fichier atomiquement avec la liste triée.
func (a *App) runApply(ctx context.Context) error {
	segs, err := ApplySegmentInstruction(a.flags.SegmentsPath, a.flags.ApplyPath)
	if err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d segment(s) dans %s", len(segs), a.flags.SegmentsPath))
	return nil
}

// runView regroupe les segments par média (dans l'ordre de la liste média) et
// émet la vue en JSON.
func (a *App) runView(ctx context.Context) error {
	view, err := BuildSegmentView(a.flags.SegmentsPath, a.flags.MediaPath)
	if err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, string(view))

	if a.flags.OutDir != "" {
		title := noteTitle(a.flags.SegmentsPath) + "_view"
		outPath, err := a.saveOutput(title, model.FormatJSON.Extension(), view)
		if err != nil {
			return fmt.Errorf("save view: %w", err)
		}
		a.ui.PrintInfo(ctx, fmt.Sprintf("Vue écrite dans :\n%s", outPath))
	}
	return nil
}

// resolveFormat applique la priorité flag > config.
func (a *App) resolveFormat() (model.Format, error) {
	s := a.flags.Format
	if s == "" {
		s = a.cfg.RowsFormat
	}
	return model.ParseFormat(s)
}

// saveOutput prépare le répertoire de sortie (sous-dossier optionnel) puis
// écrit atomiquement.
func (a *App) saveOutput(title, ext string, content []byte) (string, error) {
	outDir := a.cfg.OutputDir
	if a.flags.OutDir != "" {
		outDir = a.flags.OutDir
	}
	if a.cfg.SaveInSubdir {
		outDir = filepath.Join(outDir, fsutil.SanitizeFilename(title))
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	return fsutil.SaveTextAtomic(outDir, fsutil.SanitizeFilename(title), ext, content, false)
}

// reportUnresolved affiche les cotes dont aucun média n'a été résolu, avec la
// meilleure suggestion de l'index le cas échéant.
func (a *App) reportUnresolved(ctx context.Context, rows []contents.Row, idx *media.Index) {
	seen := map[string]bool{}
	for _, row := range rows {
		if row.Tag == "" || row.Media != nil || seen[row.Tag] {
			continue
		}
		seen[row.Tag] = true

		key := strings.ToLower(strings.ReplaceAll(row.Tag, ":", ""))
		if it, score := idx.Suggest(key, a.cfg.SuggestThreshold); it != nil {
			a.ui.PrintError(ctx, fmt.Sprintf(
				"warning: cote %s sans média ; proche de %s (%.2f)", row.Tag, it.Basename(), score))
		} else {
			a.ui.PrintError(ctx, fmt.Sprintf("warning: cote %s sans média", row.Tag))
		}
	}
}

// noteTitle dérive un titre du nom de fichier, sans extension.
func noteTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
