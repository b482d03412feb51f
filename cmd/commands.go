package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jqi/internal/config"
	"github.com/oakwood-commons/jqi/internal/jsonindex"
	"github.com/oakwood-commons/jqi/pkg/loader"
	"github.com/oakwood-commons/jqi/pkg/logger"
	"github.com/oakwood-commons/jqi/pkg/settings"
)

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jqi version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}

// newFieldsCmd prints every field name in the document, the set autocomplete draws from.
func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [file]",
		Short: "List every field name found in the document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(cmd, args)
			if err != nil {
				return err
			}
			jsonText, _, err := loader.LoadJSON(text)
			if err != nil {
				return fmt.Errorf("load input: %w", err)
			}
			index := jsonindex.New(logger.Component(cmd.Context(), "index"))
			if err := index.Analyze(jsonText); err != nil {
				return err
			}
			fields := index.AllFields()
			if len(fields) == 0 {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, "\n"))
			return err
		},
	}
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	var showDefault bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showDefault {
				_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
				return err
			}
			cfg, err := config.Load(config.ResolvePath(o.configFile))
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&showDefault, "default", false, "print the built-in default config with comments")
	return cmd
}
