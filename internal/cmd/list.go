package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func init() {
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List configured trials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			t := table.New().Headers("Name", "Protocol", "Budget", "Threads", "Lock OS Thread")
			if plain {
				t = t.Border(lipgloss.HiddenBorder()).BorderTop(false).BorderBottom(false)
			}
			t = t.StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingRight(2)
			})

			for _, trial := range cfg.Trials {
				t.Row(
					trial.Name,
					trial.Protocol.String(),
					strconv.FormatUint(trial.Budget, 10),
					strconv.Itoa(trial.Threads),
					strconv.FormatBool(trial.Options.LockOSThread),
				)
			}

			_, err = fmt.Fprintln(os.Stdout, t.String())

			return err
		},
	}

	rootCmd.AddCommand(listCmd)
}
