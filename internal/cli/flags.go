// Package cli holds flag parsing and console output shared by the binaries.
package cli

import (
	"flag"
	"strings"
	"time"
)

// ScanFlags are the flags for the inbox-scan command.
type ScanFlags struct {
	BackupPath string
	Senders    string
	After      string
	Config     string
	Verbose    bool
}

// ParseScanFlags parses command line flags for the scan command.
func ParseScanFlags() *ScanFlags {
	flags := &ScanFlags{}
	flag.StringVar(&flags.BackupPath, "backup", "", "Path to SMS backup XML file (required)")
	flag.StringVar(&flags.Senders, "senders", "", "Comma-separated sender allowlist (empty = config default)")
	flag.StringVar(&flags.After, "after", "", "Only scan messages received after this date (YYYY-MM-DD)")
	flag.StringVar(&flags.Config, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// SenderList splits the comma-separated senders flag.
func (f *ScanFlags) SenderList() []string {
	if f.Senders == "" {
		return nil
	}
	parts := strings.Split(f.Senders, ",")
	senders := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			senders = append(senders, p)
		}
	}
	return senders
}

// AfterTime parses the after flag; the zero time means no lower bound.
func (f *ScanFlags) AfterTime() (time.Time, error) {
	if f.After == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", f.After)
}

// ServeFlags holds the CLI flags for the API server command.
type ServeFlags struct {
	Port    int
	Config  string
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (0 = config default)")
	flag.StringVar(&flags.Config, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
