package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/config"
	"github.com/skyla-ma/melody-surprise/markov"
	"github.com/skyla-ma/melody-surprise/midi"
	"github.com/skyla-ma/melody-surprise/util"
)

func init() {
	inspectCmd.Flags().IntVar(&flagTop, "top", 10, "how many transitions to show")
	rootCmd.AddCommand(inspectCmd)
}

var flagTop int

var inspectCmd = &cobra.Command{
	Use:   "inspect GENRE",
	Short: "Inspects a trained genre model",
	Long: `Prints one genre's transition model: state and transition counts plus
the most probable transitions with note names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := baseConfig()
		if err := conf.Validate(); err != nil {
			return err
		}
		return runInspect(conf, args[0], flagTop)
	},
}

func runInspect(conf config.Config, g string, top int) error {
	models, err := markov.LoadAll(conf.ModelsPath())
	if err != nil {
		return err
	}
	m, ok := models[g]
	if !ok {
		return errors.Errorf("no model for %v, have: %v", g, util.SortedKeys(models))
	}

	transitions := 0
	for _, row := range m {
		transitions += len(row)
	}
	fmt.Printf("genre: %v\n", g)
	fmt.Printf("states: %v\n", m.States())
	fmt.Printf("transitions: %v\n", transitions)
	for _, t := range m.Top(top) {
		fmt.Printf("  %-4v -> %-4v %.4f\n", midi.NoteName(t.Src), midi.NoteName(t.Dst), t.Prob)
	}
	return nil
}
