package cmd

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skyla-ma/melody-surprise/remote"
	"github.com/skyla-ma/melody-surprise/util"
)

func init() {
	fetchCmd.Flags().StringVar(&flagBucket, "bucket", "", "source S3 bucket")
	fetchCmd.Flags().StringVar(&flagPrefix, "prefix", "", "key prefix to fetch under")
	fetchCmd.Flags().StringVar(&flagRegion, "region", "us-east-1", "bucket region")
	fetchCmd.MarkFlagRequired("bucket")
	rootCmd.AddCommand(fetchCmd)
}

var (
	flagBucket string
	flagPrefix string
	flagRegion string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Downloads a corpus from S3",
	Long: `Downloads every MIDI object under the bucket prefix into the corpus
root. Key prefixes become genre directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := baseConfig()
		if conf.Root == "" {
			return errors.New("no corpus root configured (--root flag or MELODY_ROOT)")
		}
		if err := util.EnsureDir(conf.Root); err != nil {
			return err
		}
		n, err := remote.FetchCorpus(flagBucket, flagPrefix, flagRegion, conf.Root)
		if err != nil {
			return err
		}
		logrus.Infof("fetched %v files into %v", n, conf.Root)
		return nil
	},
}
