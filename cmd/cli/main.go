package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
	as   string
)

var rootCmd = &cobra.Command{
	Use:   "crewboard",
	Short: "A CLI to interact with the crewboard server",
	Long: `A command-line interface for making requests to the various endpoints
of the crewboard roster.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&as, "as", "", "Member id sent as the requester")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
