package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/dbcore"
)

// migrateCmd applies the schema without starting the server.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema and indexes",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()

		db := dbcore.GetDBInstance()
		if err := dbcore.AutoMigrateDB(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		if err := dbcore.CloseDB(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		log.Println("Migration completed")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
