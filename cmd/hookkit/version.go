package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hookkit/internal/version"
)

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
	showFull    bool
}

// normalized folds --full into the individual switches.
func (o versionOptions) normalized() versionOptions {
	o.format = strings.ToLower(strings.TrimSpace(o.format))
	if o.showFull {
		o.showHash, o.showMessage, o.showDate = true, true, true
	}
	return o
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionFlags versionOptions

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionFlags.showHash, "hash", false, "include git commit hash")
	f.BoolVar(&versionFlags.showMessage, "message", false, "include git commit message")
	f.BoolVar(&versionFlags.showDate, "date", false, "include build timestamp")
	f.BoolVar(&versionFlags.showFull, "full", false, "include all build metadata")
	f.StringVar(&versionFlags.format, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hookkit build fingerprints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return renderVersion(cmd.OutOrStdout(), version.Current(), versionFlags)
	},
}

func renderVersion(out io.Writer, info version.Info, opts versionOptions) error {
	opts = opts.normalized()
	switch opts.format {
	case "pretty":
		renderVersionPretty(out, info, opts)
		return nil
	case "json":
		return renderVersionJSON(out, info, opts)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
	}
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	_, _ = fmt.Fprintf(out, "hookkit %s\n", version.Colored(info.Version))
	if opts.showHash {
		_, _ = fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		_, _ = fmt.Fprintf(out, "message: %s\n", valueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		_, _ = fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "hookkit",
		Version: info.Version,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
