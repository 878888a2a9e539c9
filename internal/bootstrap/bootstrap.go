// Package bootstrap installe sur disque, au premier lancement, les
// ressources embarquées (config d'exemple, templates) sans jamais écraser
// les fichiers d'un utilisateur.
package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/arkivscribe/internal/fsutil"
)

// EnsureConfigPresent copie un fichier embarqué (assetPath dans fsys) vers dstPath
// si dstPath n'existe pas encore.
// - dstPath : chemin complet sur disque (ex: binDir/arkivscribe.yaml)
// - fsys : embed.FS (ou autre fs.FS) contenant l'asset
// - assetPath : chemin dans fsys vers l'asset (ex: "arkivscribe.example.yaml")
// Comportement : idempotent, ne remplace jamais un fichier existant.
func EnsureConfigPresent(dstPath string, fsys fs.FS, assetPath string) error {
	// sécurité: vérifier parent
	parent := filepath.Dir(dstPath)
	if parent == "" {
		parent = "."
	}
	if st, err := os.Stat(parent); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("échec création répertoire parent %s: %w", parent, err)
			}
		} else {
			return fmt.Errorf("échec test parent %s: %w", parent, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}

	// si le fichier existe déjà -> ne rien faire
	if _, err := os.Stat(dstPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("échec stat fichier cible %s: %w", dstPath, err)
	}

	data, err := fs.ReadFile(fsys, filepath.ToSlash(assetPath))
	if err != nil {
		return fmt.Errorf("lecture de l'asset embarqué %s : %w", assetPath, err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return fmt.Errorf("écriture du fichier de configuration %s : %w", dstPath, err)
	}
	return nil
}

// EnsureTemplatesPresent s'assure que les templates listés existent sur disque.
//
// - tplDir  : dossier destination sur disque (ex: "./templates")
// - fsys    : embed.FS contenant les ressources embarquées
// - srcFiles: liste explicite de chemins DANS fsys
//
// Comportement :
//  1. tplDir absent ou vide -> créer et copier tous les fichiers listés.
//  2. tplDir non vide -> ne copier que les fichiers manquants.
//  3. NE REMPLACE JAMAIS les fichiers existants.
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) error {
	if _, err := os.Stat(tplDir); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(tplDir, 0o755); err != nil {
				return fmt.Errorf("échec de création du répertoire de templates %s : %w", tplDir, err)
			}
			return copyAll(tplDir, fsys, srcFiles)
		}
		return fmt.Errorf("échec lors du test du répertoire de templates %s : %w", tplDir, err)
	}

	empty, err := fsutil.IsDirEmpty(tplDir)
	if err != nil {
		return fmt.Errorf("échec lors de la vérification du répertoire %s : %w", tplDir, err)
	}
	if empty {
		return copyAll(tplDir, fsys, srcFiles)
	}

	// tplDir non vide -> n'ajouter que les fichiers manquants
	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, filepath.Base(src))
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("échec lors du test du fichier %s : %w", dest, err)
		}
		if err := copyOne(dest, fsys, src); err != nil {
			return err
		}
	}
	return nil
}

func copyAll(tplDir string, fsys fs.FS, srcFiles []string) error {
	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, filepath.Base(src))
		if err := copyOne(dest, fsys, src); err != nil {
			return err
		}
	}
	return nil
}

func copyOne(dest string, fsys fs.FS, src string) error {
	data, err := fs.ReadFile(fsys, filepath.ToSlash(src))
	if err != nil {
		return fmt.Errorf("fichier embarqué introuvable %s : %w", src, err)
	}
	if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du template %s : %w", dest, err)
	}
	return nil
}
