package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lumina-ai/lumina-console/internal/config"
	"github.com/lumina-ai/lumina-console/internal/ui"
)

// SettingsCmd inspects configuration
type SettingsCmd struct {
	Keys SettingsKeysCmd `cmd:"keys" help:"List keyboard shortcuts"`
	Show SettingsShowCmd `cmd:"show" help:"Show settings file location and effective values" default:"1"`
}

// SettingsShowCmd displays the resolved configuration
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type settingsJSON struct {
	BaseURL        string `json:"base_url"`
	DBPath         string `json:"db_path"`
	Home           string `json:"home"`
	MetricsAddr    string `json:"metrics_addr,omitempty"`
	RequestTimeout string `json:"request_timeout"`
	Retries        int    `json:"retries"`
	SettingsFile   string `json:"settings_file"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	effective := settingsJSON{
		BaseURL:        cli.BaseURL,
		DBPath:         config.GetDBPath(),
		Home:           config.GetLuminaHome(),
		MetricsAddr:    cli.MetricsAddr,
		RequestTimeout: cli.Timeout.String(),
		Retries:        cli.Retries,
		SettingsFile:   config.GetSettingsPath(),
	}

	if s.Format == "json" {
		return writeJSON(cli.out(), effective)
	}

	out := cli.out()
	fmt.Fprintf(out, "Settings file: %s\n\n", effective.SettingsFile)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "base_url\t%s\n", effective.BaseURL)
	fmt.Fprintf(w, "db_path\t%s\n", effective.DBPath)
	fmt.Fprintf(w, "home\t%s\n", effective.Home)
	fmt.Fprintf(w, "metrics_addr\t%s\n", orNone(effective.MetricsAddr))
	fmt.Fprintf(w, "request_timeout\t%s\n", effective.RequestTimeout)
	fmt.Fprintf(w, "retries\t%d\n", effective.Retries)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags override environment variables, which override the settings file.")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// SettingsKeysCmd lists keyboard shortcuts
type SettingsKeysCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type keyBindingJSON struct {
	Help string   `json:"help"`
	Keys []string `json:"keys"`
	Name string   `json:"name"`
}

// Run executes the keys command
func (s *SettingsKeysCmd) Run(cli *CLI) error {
	bindings := ui.KeyBindings()

	if s.Format == "json" {
		entries := make([]keyBindingJSON, 0, len(bindings))
		for _, b := range bindings {
			entries = append(entries, keyBindingJSON(b))
		}
		return writeJSON(cli.out(), entries)
	}
	return renderKeyTable(cli.out(), bindings)
}

func renderKeyTable(out io.Writer, bindings []ui.KeyBinding) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tKEYS\tDESCRIPTION")
	fmt.Fprintln(w, "----\t----\t-----------")
	for _, b := range bindings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, strings.Join(b.Keys, ", "), b.Help)
	}
	return w.Flush()
}
