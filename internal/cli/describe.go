package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/replkit/internal/config"
	"github.com/Dicklesworthstone/replkit/internal/theme"
	"github.com/Dicklesworthstone/replkit/internal/tui/helpview"
	"github.com/Dicklesworthstone/replkit/repl"
)

// Describe output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// helpSnapshot builds the demo session without running it and returns its help.
func helpSnapshot(cmd *cobra.Command, opts *rootOptions) (*repl.HelpContext, *config.Config, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewDemoSession(
		repl.WithName(cfg.Name),
		repl.WithVersion(Version),
		repl.WithDescription(demoDescription),
	)
	if err != nil {
		return nil, nil, err
	}
	return s.HelpContext(), cfg, nil
}

// writeHelp renders help in the requested format.
func writeHelp(w io.Writer, help *repl.HelpContext, format string, width int) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(help, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(help); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		v := repl.NewDefaultHelpViewer(w, width)
		if err := v.HelpGeneral(help); err != nil {
			return err
		}
		for i := range help.Entries {
			fmt.Fprintln(w)
			if err := v.HelpCommand(&help.Entries[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (use %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print every shell command with its parameters",
		Example: `  replkit describe
  replkit describe --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			help, cfg, err := helpSnapshot(cmd, opts)
			if err != nil {
				return err
			}
			return writeHelp(cmd.OutOrStdout(), help, format, cfg.Help.Width)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, json, yaml")
	return cmd
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse shell commands in a full-screen viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			help, cfg, err := helpSnapshot(cmd, opts)
			if err != nil {
				return err
			}
			theme.Apply(cfg.NoColor)
			return helpview.Run(help, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
