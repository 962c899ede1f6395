package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/ejectkit/create-app/internal/branding"
	"github.com/ejectkit/create-app/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	useNpm      bool
	templateDir string
	scriptsDir  string
)

func init() {
	rootCmd.Flags().BoolVar(&useNpm, "use-npm", false, "Install dependencies with npm even when yarn is available")
	rootCmd.Flags().StringVar(&templateDir, "template", "", "Copy the template from this directory instead of the built-in one")
	rootCmd.Flags().StringVar(&scriptsDir, "scripts", "", "Eject config/ and scripts/ from this directory instead of the built-in ones")
	rootCmd.SetVersionTemplate(branding.CLIName() + " {{.Version}}\n")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project-directory>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a React project whose webpack, Babel and ESLint configuration
is ejected into the project from the start: config/ and scripts/ are yours to edit.`,
	Example:       "  " + branding.CLIName() + " my-app\n  " + branding.CLIName() + " my-app --use-npm",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
	RunE: runCreate,
}

// Execute runs the root command with build info injected via ldflags.
// Errors are reported to stderr before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(os.Stderr, err)
	}
	return err
}
