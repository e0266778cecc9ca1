package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ayusman/signtutor/internal/landmark"
	"github.com/ayusman/signtutor/internal/refs"
	"github.com/ayusman/signtutor/internal/store"
)

var lettersCmd = &cli.Command{
	Name:  "letters",
	Usage: "Manage reference letter poses",
	Commands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "List available letters",
			Action: runLettersList,
		},
		{
			Name:      "show",
			Usage:     "Print the reference pose for a letter as JSON",
			ArgsUsage: "LETTER",
			Action:    runLettersShow,
		},
		{
			Name:      "import",
			Usage:     "Import a reference pose for a letter from a JSON file",
			ArgsUsage: "LETTER FILE",
			Action:    runLettersImport,
		},
		{
			Name:      "delete",
			Usage:     "Delete the trained reference pose for a letter",
			ArgsUsage: "LETTER",
			Action:    runLettersDelete,
		},
	},
}

// openLibrary builds the effective library: builtins overridden by any
// letters trained into the store.
func openLibrary(cmd *cli.Command) (*store.Store, *refs.Library, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	library := refs.WithBuiltins()
	if err := loadLetters(st, library); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load letters: %w", err)
	}
	return st, library, nil
}

func argLetter(cmd *cli.Command) (string, error) {
	letter := cmd.Args().First()
	if !refs.ValidLetter(letter) {
		return "", errors.New("expected a single uppercase letter argument")
	}
	return letter, nil
}

func runLettersList(ctx context.Context, cmd *cli.Command) error {
	st, library, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	trained := map[string]bool{}
	stored, err := st.Letters().List()
	if err != nil {
		return err
	}
	for _, l := range stored {
		trained[l.Letter] = true
	}

	for _, letter := range library.Letters() {
		source := "builtin"
		if trained[letter] {
			source = "trained"
		}
		fmt.Printf("%s\t%s\n", letter, source)
	}
	return nil
}

func runLettersShow(ctx context.Context, cmd *cli.Command) error {
	letter, err := argLetter(cmd)
	if err != nil {
		return err
	}

	st, library, err := openLibrary(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	set, err := library.Lookup(letter)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"letter": letter,
		"points": set,
	})
}

func runLettersImport(ctx context.Context, cmd *cli.Command) error {
	letter, err := argLetter(cmd)
	if err != nil {
		return err
	}
	path := cmd.Args().Get(1)
	if path == "" {
		return errors.New("expected a JSON file argument")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var payload struct {
		Points landmark.Set `json:"points"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(payload.Points) != landmark.NumLandmarks {
		return fmt.Errorf("expected %d points, got %d", landmark.NumLandmarks, len(payload.Points))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.Letters().Upsert(letter, payload.Points); err != nil {
		return fmt.Errorf("store letter: %w", err)
	}

	fmt.Printf("Imported reference pose for %s\n", letter)
	return nil
}

func runLettersDelete(ctx context.Context, cmd *cli.Command) error {
	letter, err := argLetter(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.Letters().Delete(letter); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no trained pose for %s", letter)
		}
		return fmt.Errorf("delete letter: %w", err)
	}

	fmt.Printf("Deleted trained pose for %s\n", letter)
	return nil
}
