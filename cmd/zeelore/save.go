package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"zeelore/internal/config"
	"zeelore/internal/datafiles"
	"zeelore/pkg/save"
)

func saveCmd(cfg *config.Config) *cobra.Command {
	var savePath string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Inspect or edit a player save file",
	}
	cmd.PersistentFlags().StringVar(&savePath, "save", cfg.SavePath, "Save file path")

	show := &cobra.Command{
		Use:   "show [filter]",
		Short: "List the save's qualities with their levels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			state, _, _, err := loadSave(savePath)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, state.Qualities.Find(filter).Bare())
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <quality-id> <level>",
		Short: "Set a save quality's base level and write the save back",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("quality ID must be numeric: %w", err)
			}
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("level must be numeric: %w", err)
			}

			state, loader, path, err := loadSave(savePath)
			if err != nil {
				return err
			}
			sq, ok := state.Qualities.Get(qid)
			if !ok {
				return fmt.Errorf("save has no quality %d", qid)
			}

			sq.SetLevel(level)
			if err := loader.WriteSave(path, state.Raw()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s\n", sq.Bare())
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func loadSave(path string) (*save.State, *datafiles.Loader, string, error) {
	if path == "" {
		return nil, nil, "", fmt.Errorf("no save file given (--save or ZEELORE_SAVE)")
	}
	world, loader := buildWorld()
	raw, err := loader.LoadSave(path)
	if err != nil {
		return nil, nil, "", err
	}
	return save.New(raw, world, slog.Default()), loader, path, nil
}
