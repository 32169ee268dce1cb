package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// @title                       Pharmacy Prescription API
// @version                     1.0
// @description                 Registration, login and prescription workflow for patients, doctors and pharmacists.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and JWT token.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pharmacy-api",
		Short:        "Pharmacy prescription API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
