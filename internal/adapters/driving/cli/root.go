// Package cli implements the command-line driving adapter.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driving"
	"github.com/corvid-labs/quarry-cli/internal/logger"
)

// version is set by the build via SetVersion.
var version = "dev"

// Services bundles the driving ports the commands depend on.
type Services struct {
	Ingestor driving.Ingestor
	Answerer driving.Answerer
	Admin    driving.CollectionAdmin

	// Close releases the underlying store and model clients.
	Close func() error
}

// ServicesBuilder constructs the services for the data directory and
// collection resolved from flags. An empty dataDir means the configured
// default.
type ServicesBuilder func(dataDir, collection string) (*Services, error)

var servicesBuilder ServicesBuilder

// Persistent flag values.
var (
	flagDatabase   string
	flagCollection string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Ingest documents and ask questions about them",
	Long: `Quarry ingests local documents into a vector store and answers
questions about them using a local or remote language model.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDatabase, "database", "d", "",
		"path to the database directory (default: configured data dir)")
	rootCmd.PersistentFlags().StringVarP(&flagCollection, "collection", "c", domain.DefaultCollection,
		"collection to operate on")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose output")
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// SetServicesBuilder installs the factory the commands use to construct
// their services once flags are parsed.
func SetServicesBuilder(b ServicesBuilder) {
	servicesBuilder = b
}

// services builds the service bundle for the current flag values.
func services() (*Services, error) {
	if servicesBuilder == nil {
		return nil, errors.New("services not configured")
	}
	return servicesBuilder(flagDatabase, flagCollection)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
