package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/arkivscribe/internal/app"
	"github.com/patrickprogramme/arkivscribe/internal/assets"
	"github.com/patrickprogramme/arkivscribe/internal/bootstrap"
	"github.com/patrickprogramme/arkivscribe/internal/config"
	"github.com/patrickprogramme/arkivscribe/internal/render"
	"github.com/patrickprogramme/arkivscribe/internal/ui"
)

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
		fmt.Printf("Lancement depuis: %s\n", exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "arkivscribe.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "arkivscribe.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	// s'assurer que les templates existent (dans binDir/templates)
	tplDir := filepath.Join(binDir, "templates")
	if err := bootstrap.EnsureTemplatesPresent(
		tplDir,
		assets.Embedded,
		assets.DefaultTemplatePaths,
	); err != nil {
		log.Printf("warning: ensure templates present: %v", err)
	}

	// charger la config depuis flags.ConfigPath (qui pointe vers binDir/arkivscribe.yaml si par défaut)
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// construction du renderer
	renderer, err := render.DefaultRenderer(exePath)
	if err != nil {
		log.Fatalf("impossible de construire le renderer: %v", err)
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags, renderer)
	if err := a.Run(ctx); err != nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *app.CLIFlags {
	f := &app.CLIFlags{}
	flag.StringVar(&f.ConfigPath, "config", "arkivscribe.yaml", "path to config file")
	flag.StringVar(&f.ContentsPath, "contents", "", "fichier texte du champ innehåll à découper")
	flag.StringVar(&f.MediaPath, "media", "", "liste JSON des fichiers média de la notice")
	flag.StringVar(&f.SegmentsPath, "segments", "", "fichier JSON de segments")
	flag.StringVar(&f.ApplyPath, "apply", "", "instruction JSON à appliquer aux segments")
	flag.BoolVar(&f.View, "view", false, "produire la vue des segments groupée par média")
	flag.StringVar(&f.Format, "format", "", "format de sortie des lignes : txt | md | json")
	flag.StringVar(&f.OutDir, "out", "", "répertoire de sortie (prioritaire sur la config)")
	flag.BoolVar(&f.Copy, "copy", false, "copier la sortie dans le presse-papier")
	flag.Parse()
	return f
}
