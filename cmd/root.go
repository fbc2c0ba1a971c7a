package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/config"
)

var (
	flagRoot    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "melody-surprise",
	Short: "Melodic predictability estimator",
	Long: `Fits first-order Markov chains over monophonic pitch lines per genre
and scores every melody's transitions in bits of surprise.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "corpus root directory, defaults to MELODY_ROOT")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// baseConfig layers the persistent flags over the environment defaults.
func baseConfig() config.Config {
	c := config.Default()
	if flagRoot != "" {
		c.Root = flagRoot
	}
	return c
}
