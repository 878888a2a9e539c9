package ui

import "context"

type Interface interface {
	// GetExistingFilePath demande un chemin de fichier à l'utilisateur et ne
	// retourne que lorsqu'un fichier lisible existe à ce chemin.
	GetExistingFilePath(ctx context.Context, prompt string) (string, error)

	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
