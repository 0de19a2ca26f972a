package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RudreshNarwal/skyvern/internal/artifact"
	"github.com/RudreshNarwal/skyvern/internal/config"
	skyhttp "github.com/RudreshNarwal/skyvern/internal/http"
	"github.com/RudreshNarwal/skyvern/internal/log"
	"github.com/RudreshNarwal/skyvern/internal/service"
	internal_storage "github.com/RudreshNarwal/skyvern/internal/storage"
	"github.com/RudreshNarwal/skyvern/pkg/encode"
	"github.com/RudreshNarwal/skyvern/pkg/logartifact"
	"github.com/RudreshNarwal/skyvern/pkg/models"
)

func SetupCLI(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("db", "", "Database connection string (overrides config)")
	rootCmd.PersistentFlags().String("org", "o_default", "Organization ID")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			store := initStore(connStr(cmd, cfg))
			defer store.Close()

			// register once so per-run entries accumulate for later saves
			log.GetLogger().AddHook(log.NewCaptureHook())

			svc := service.NewObserverService(store)
			router := skyhttp.NewRouter(svc)
			log.GetLogger().Infof("Starting server on :%s", cfg.Server.Port)
			if err := router.Run(":" + cfg.Server.Port); err != nil {
				log.GetLogger().Errorf("Server stopped: %v", err)
				os.Exit(1)
			}
		},
	}

	createCruiseCmd := &cobra.Command{
		Use:   "create-cruise [prompt]",
		Short: "Create a new observer cruise",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			store := initStore(connStr(cmd, cfg))
			defer store.Close()

			svc := service.NewObserverService(store)
			org, _ := cmd.Flags().GetString("org")
			cruise, err := svc.CreateCruise(context.Background(), org, models.CruiseRequest{UserPrompt: args[0]})
			if err != nil {
				log.GetLogger().Errorf("Failed to create cruise: %v", err)
				fmt.Fprintf(os.Stderr, "Error: failed to create cruise: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stdout, "Created cruise '%s' with status '%s'\n", cruise.ObserverCruiseID, cruise.Status)
		},
	}

	listArtifactsCmd := &cobra.Command{
		Use:   "list-artifacts",
		Short: "List stored artifacts for an organization",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			store := initStore(connStr(cmd, cfg))
			defer store.Close()

			org, _ := cmd.Flags().GetString("org")
			artifacts, err := store.ListArtifacts(context.Background(), org)
			if err != nil {
				log.GetLogger().Errorf("Failed to list artifacts: %v", err)
				fmt.Fprintf(os.Stderr, "Error: failed to list artifacts: %v\n", err)
				os.Exit(1)
			}
			if len(artifacts) == 0 {
				fmt.Fprintf(os.Stdout, "No artifacts found.\n")
				return
			}
			fmt.Fprintf(os.Stdout, "Artifacts:\n")
			for _, a := range artifacts {
				fmt.Fprintf(os.Stdout, "- ID: %s, Type: %s, Created: %s\n",
					a.ArtifactID, a.ArtifactType, a.CreatedAt.Format(time.RFC3339))
			}
		},
	}

	rootCmd.AddCommand(serveCmd, createCruiseCmd, listArtifactsCmd)
}

// NewLogSaver builds the log-artifact saver backed by the given store.
func NewLogSaver(store *internal_storage.PostgresStore) *logartifact.Saver {
	manager := artifact.NewManager(store)
	return logartifact.NewSaver(store, manager, encode.NewJSONEncoder(), encode.NewTextEncoder(), log.GetLogger())
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.GetLogger().Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}
	return cfg
}

func connStr(cmd *cobra.Command, cfg *config.Config) string {
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		return db
	}
	return cfg.ConnString()
}

func initStore(dbConnStr string) *internal_storage.PostgresStore {
	store, err := internal_storage.NewPostgresStore(dbConnStr)
	if err != nil {
		log.GetLogger().Errorf("Failed to initialize store: %v", err)
		os.Exit(1)
	}
	return store
}
