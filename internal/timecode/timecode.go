// Package timecode convertit les libellés de temps des annotations d'archive
// ("M:SS" ou "H:MM:SS", parfois entre parenthèses) en secondes et inversement.
//
// Contrat : aucune fonction ne panique et aucune ne retourne d'erreur. Une
// entrée malformée dégrade en 0 seconde / "0:00" — les champs legacy sont
// trop irréguliers pour qu'un échec dur soit utile à l'appelant.
package timecode

import (
	"fmt"
	"strings"
)

// components découpe un libellé en 2 ou 3 composants entiers non négatifs.
// Retourne (nil, false) si le libellé ne ressemble pas à un temps.
func components(label string) ([]int, bool) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, false
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, ok := parseUint(strings.TrimSpace(p))
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// parseUint : uniquement des chiffres ASCII (pas de signe, pas d'espace).
func parseUint(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ToSeconds convertit "M:SS" ou "H:MM:SS" (parenthèses optionnelles) en
// secondes. Malformé -> 0, jamais d'erreur.
func ToSeconds(label string) int {
	c, ok := components(label)
	if !ok {
		return 0
	}
	if len(c) == 3 {
		return c[0]*3600 + c[1]*60 + c[2]
	}
	return c[0]*60 + c[1]
}

// NormalizeLabel re-rend le libellé sous forme canonique : composants de
// droite paddés à 2 chiffres, composant de gauche laissé tel quel.
// "1:5" -> "1:05", "0:0" -> "0:00". Malformé -> "0:00".
func NormalizeLabel(label string) string {
	c, ok := components(label)
	if !ok {
		return "0:00"
	}
	if len(c) == 3 {
		return fmt.Sprintf("%d:%02d:%02d", c[0], c[1], c[2])
	}
	return fmt.Sprintf("%d:%02d", c[0], c[1])
}

// Label rend un nombre de secondes sous forme canonique : "M:SS" sous
// l'heure, "H:MM:SS" à partir d'une heure. ToSeconds(Label(s)) == s pour
// tout s >= 0.
func Label(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
