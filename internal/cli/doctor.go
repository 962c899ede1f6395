package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ejectkit/create-app/internal/config"
	"github.com/ejectkit/create-app/internal/manifest"
	"github.com/ejectkit/create-app/internal/pkgmanager"
	"github.com/ejectkit/create-app/internal/tsconfig"
	"github.com/spf13/cobra"
)

var (
	checkManifest string
	checkTSConfig string
)

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a package.json file at the given path")
	doctorCmd.Flags().StringVar(&checkTSConfig, "check-tsconfig", "", "Report tsconfig.json corrections for the project at the given directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and existing projects",
	Long: `Run diagnostic checks on the Node toolchain and settings. With --check-manifest
or --check-tsconfig, validate an existing project instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		if checkManifest == "" && checkTSConfig == "" {
			runRuntimeCheck(cmd, w)
			runConfigCheck(w)
			return nil
		}

		if checkManifest != "" {
			if err := runManifestCheck(w, checkManifest); err != nil {
				return err
			}
		}
		if checkTSConfig != "" {
			if err := runTSConfigCheck(w, checkTSConfig); err != nil {
				return err
			}
		}
		return nil
	},
}

func runRuntimeCheck(cmd *cobra.Command, w io.Writer) {
	fmt.Fprintln(w, "Runtime check:")

	if node, err := pkgmanager.LookupTool(cmd.Context(), "node"); err != nil {
		fmt.Fprintf(w, "  [MISS] node: %v\n", err)
	} else if err := pkgmanager.CheckNodeVersion(node.Version.String()); err != nil {
		fmt.Fprintf(w, "  [FAIL] node %s at %s: %v\n", node.Version, node.Path, err)
	} else {
		fmt.Fprintf(w, "  [ OK ] node %s found at %s\n", node.Version, node.Path)
	}

	for _, bin := range []string{pkgmanager.NameNpm, pkgmanager.NameYarn} {
		tool, err := pkgmanager.LookupTool(cmd.Context(), bin)
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s not found\n", bin)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s %s found at %s\n", bin, tool.Version, tool.Path)
	}
}

func runConfigCheck(w io.Writer) {
	fmt.Fprintln(w, "Settings check:")

	if _, err := os.Stat(config.FilePath()); err != nil {
		fmt.Fprintf(w, "  [INFO] %s not found, using defaults\n", config.FilePath())
	} else {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", config.FilePath())
	}

	s := config.Current()
	fmt.Fprintf(w, "  [INFO] %s = %s\n", config.KeyPackageManager, s.PackageManager)
	for _, dir := range []struct{ key, value string }{
		{config.KeyTemplateDir, s.TemplateDir},
		{config.KeyScriptsDir, s.ScriptsDir},
	} {
		if dir.value == "" {
			fmt.Fprintf(w, "  [INFO] %s not set, using the built-in tree\n", dir.key)
			continue
		}
		if info, err := os.Stat(dir.value); err != nil || !info.IsDir() {
			fmt.Fprintf(w, "  [FAIL] %s = %s is not a directory\n", dir.key, dir.value)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s = %s\n", dir.key, dir.value)
	}
}

func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "  [ OK ] Valid manifest\n")
			return nil
		}
		printer.Fprintf(w, "  [ OK ] Valid manifest: %s (v%s, %d dependencies)\n", m.Name, m.Version, len(m.Dependencies))
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "    - %s\n", issue)
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}

// runTSConfigCheck reports what Verify would change without writing.
func runTSConfigCheck(w io.Writer, dir string) error {
	project := tsconfig.Project{Root: dir}
	configPath := project.ConfigPath()
	fmt.Fprintf(w, "TypeScript configuration: %s\n", configPath)

	if _, err := tsconfig.FindCompiler(dir); err != nil {
		var missing *tsconfig.MissingCompilerError
		if !errors.As(err, &missing) {
			return err
		}
		fmt.Fprintf(w, "  [MISS] typescript not installed (run %s)\n", missing.Commands()[0])
	} else {
		fmt.Fprintln(w, "  [ OK ] typescript installed")
	}

	policy, err := tsconfig.DefaultPolicy()
	if err != nil {
		return err
	}

	var (
		doc      tsconfig.Document
		resolved tsconfig.Resolved
	)
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err := tsconfig.Load(configPath)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			return err
		}
		doc, resolved = cfg.Document, cfg.Resolved
	} else if !project.IsTypeScript() {
		fmt.Fprintf(w, "  [INFO] no %s and %s is not a TypeScript entry\n", tsconfig.FileName, filepath.Base(project.Entry()))
		return nil
	}

	result := tsconfig.Reconcile(doc, policy, resolved)
	if !result.Changed() {
		fmt.Fprintln(w, "  [ OK ] compiler options match the required settings")
		return nil
	}
	fmt.Fprintf(w, "  [WARN] %d correction(s) would be applied:\n", len(result.Changes))
	for _, change := range result.Changes {
		fmt.Fprintf(w, "    - %s\n", change)
	}
	return nil
}
