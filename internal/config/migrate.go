package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/arkivscribe/internal/fsutil"
)

// orchestrateConfigUpgrade : sauvegarde, migration, écriture
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg == nil {
		return fmt.Errorf("config nil lors de la migration")
	}
	if cfg.configFilePath == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	// 1) backup
	backupPath, err := backupConfig(cfg.configFilePath)
	if err != nil {
		return fmt.Errorf("échec de la sauvegarde du fichier de configuration avant migration : %w", err)
	}

	// 2) appliquer migrations successives
	if err := migrateConfig(cfg, fromVersion); err != nil {
		return fmt.Errorf("échec lors de la migration de la configuration (depuis %d) : %w", fromVersion, err)
	}

	// 2b) normaliser au cas où la migration aurait introduit des valeurs à nettoyer
	cfg.normalizeConfig()

	// mettre à jour la version EN MÉMOIRE
	cfg.ConfigVersion = CurrentConfigVersion

	// 3) sérialiser la config en YAML et réécrire le fichier
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("échec d'encodage YAML de la configuration migrée : %w", err)
	}
	if err := fsutil.WriteFileAtomic(cfg.configFilePath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture de la configuration migrée : %w", err)
	}

	fmt.Printf("info : configuration migrée vers la version %d (sauvegarde : %s)\n", CurrentConfigVersion, backupPath)
	return nil
}

// backupConfig copie le fichier de configuration vers un .bak horodaté.
func backupConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("lecture de %s : %w", path, err)
	}
	backup := path + ".bak." + time.Now().Format("20060102T150405")
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("écriture de la sauvegarde %s : %w", backup, err)
	}
	return backup, nil
}

// migrateConfig applique les migrations de version successivement.
func migrateConfig(cfg *Config, fromVersion int) error {
	for v := fromVersion; v < CurrentConfigVersion; v++ {
		switch v {
		case 0:
			// fichiers antérieurs au champ config_version : les champs
			// manquants ont déjà reçu les defaults à l'unmarshal, rien
			// d'autre à faire
		default:
			return fmt.Errorf("aucune migration connue depuis la version %d", v)
		}
	}
	return nil
}
