package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cnc-league/cnc/internal/devserver"
	"github.com/cnc-league/cnc/internal/report"
)

var (
	serveDataDir string
	serveOutput  string
	servePort    int
	serveNoWatch bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Build the site and serve it locally",
		Long:  `Builds the site, serves it over HTTP, and rebuilds whenever the data directory changes. Rebuild failures keep the previous output serving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := &report.Builder{DataDir: serveDataDir, OutputDir: serveOutput}

			server := &devserver.Server{
				Dir:     serveOutput,
				Port:    servePort,
				Builder: builder,
			}
			if !serveNoWatch {
				server.WatchPaths = []string{serveDataDir}
			}

			if err := server.Run(cmd.Context()); err != nil {
				return wrapBuildError(builder.ConfigPath(), err)
			}
			return nil
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "data", "Directory holding hive.toml, maturity.csv, and the game cache")
	serveCmd.Flags().StringVarP(&serveOutput, "output", "o", "build", "Directory to build into and serve")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Serve without watching for changes")
	rootCmd.AddCommand(serveCmd)
}
