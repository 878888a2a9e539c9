package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/patrickprogramme/arkivscribe/internal/assets"
	"github.com/patrickprogramme/arkivscribe/internal/fsutil"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`

	// Organisation
	SaveInSubdir bool `yaml:"save_in_subdir"`

	// Lignes de contenu
	SaveRows   bool   `yaml:"save_rows"`
	RowsFormat string `yaml:"rows_format"` // txt | md | json

	// Tri des cotes (tag BCP-47 ; le fonds utilise ÅÄÖ -> suédois par défaut)
	CollationLocale string `yaml:"collation_locale"`

	// Presse-papier
	CopyToClipboard bool `yaml:"copy_to_clipboard"`

	// Suggestions pour les cotes non résolues
	SuggestUnresolved bool    `yaml:"suggest_unresolved"`
	SuggestThreshold  float64 `yaml:"suggest_threshold"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "."
	c.SaveInSubdir = true

	c.SaveRows = false
	c.RowsFormat = "txt"

	c.CollationLocale = "sv"

	c.CopyToClipboard = false

	c.SuggestUnresolved = true
	c.SuggestThreshold = 0.85

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "arkivscribe.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(c.OutputDir)

	// Trim and normalize strings
	c.RowsFormat = strings.TrimSpace(strings.ToLower(c.RowsFormat))
	if c.RowsFormat == "" {
		c.RowsFormat = "txt"
	}

	c.CollationLocale = strings.TrimSpace(c.CollationLocale)
	if c.CollationLocale == "" {
		c.CollationLocale = "sv"
	}

	if c.SuggestThreshold <= 0 || c.SuggestThreshold > 1 {
		c.SuggestThreshold = 0.85
	}
}

// CollationTag résout collation_locale en language.Tag. Une locale invalide
// retombe sur le suédois plutôt que d'échouer : le tri doit rester
// déterministe même avec une config cassée.
func (c *Config) CollationTag() language.Tag {
	tag, err := language.Parse(c.CollationLocale)
	if err != nil {
		return language.Swedish
	}
	return tag
}
