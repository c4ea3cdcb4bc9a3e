// Package batch runs the generator from the command line: the same
// partitioning, cross join and export as the web page, reading lists from
// files and writing the export to a file or stdout.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/vendorgrid/internal/cnpj"
	"github.com/dalemusser/vendorgrid/internal/notify"
	"github.com/dalemusser/vendorgrid/internal/records"
	"github.com/dalemusser/vendorgrid/internal/workspace"
	"github.com/dalemusser/vendorgrid/logging"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitAborted = 3
)

// IO is where a run reads and writes. Files named "-" mean Stdin/Stdout.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdIO uses the process streams.
func StdIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run dispatches args (without the binary name) and returns the exit code.
func Run(binName string, args []string, stdio IO) int {
	if len(args) < 1 {
		usage(binName, stdio.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "generate":
		return generateCmd(binName, args[1:], stdio)
	case "format":
		return formatCmd(binName, args[1:], stdio)
	case "help", "-h", "--help":
		usage(binName, stdio.Stdout)
		return ExitOK
	default:
		fmt.Fprintf(stdio.Stderr, "unknown command: %q\n\n", args[0])
		usage(binName, stdio.Stderr)
		return ExitUsage
	}
}

func usage(binName string, w io.Writer) {
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  %s generate --cnpjs FILE --emails FILE [flags]\n", binName)
	fmt.Fprintf(w, "  %s format FILE\n", binName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprintf(w, "  %s generate --cnpjs cnpjs.txt --emails emails.txt --format tsv --out cnpj-data.xlsx\n", binName)
}

func generateCmd(binName string, args []string, stdio IO) int {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.SetOutput(stdio.Stderr)
	idsPath := fs.String("cnpjs", "", "File with one CNPJ per line (- for stdin)")
	emailsPath := fs.String("emails", "", "File with one email per line (- for stdin)")
	action := fs.String("action", "", "Action for every record (default: first of --actions)")
	actions := fs.StringSlice("actions", workspace.DefaultActions, "Allowed actions")
	vendorName := fs.String("vendor-name", "", "Vendor name (default "+records.DefaultVendorName+")")
	country := fs.String("country", "", "Country code (default "+records.DefaultCountry+")")
	vendorID := fs.String("vendor-id", records.DefaultVendorID, "Vendor id (UUID)")
	format := fs.String("format", string(workspace.FormatCSV), "Export format: csv or tsv")
	out := fs.String("out", "-", "Output file (- for stdout)")
	locale := fs.String("locale", "pt-BR", `Message language: "pt-BR" or "en"`)
	logLevel := fs.String("log-level", "warn", "Log level")
	fs.Usage = func() {
		fmt.Fprintf(stdio.Stderr, "Usage: %s generate --cnpjs FILE --emails FILE [flags]\n", binName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if *idsPath == "" || *emailsPath == "" {
		fmt.Fprintln(stdio.Stderr, "error: --cnpjs and --emails are required")
		fs.Usage()
		return ExitUsage
	}
	if *idsPath == "-" && *emailsPath == "-" {
		fmt.Fprintln(stdio.Stderr, "error: only one of --cnpjs and --emails can read stdin")
		return ExitUsage
	}
	f, err := workspace.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitUsage
	}
	id, err := uuid.Parse(*vendorID)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: --vendor-id: %v\n", err)
		return ExitUsage
	}
	if !logging.IsValidLogLevel(*logLevel) {
		fmt.Fprintf(stdio.Stderr, "error: --log-level must be one of %s\n", strings.Join(logging.ValidLogLevels, ", "))
		return ExitUsage
	}
	logger, err := logging.BuildLogger(*logLevel, "dev")
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitFailure
	}
	defer logger.Sync()

	ids, err := readInput(*idsPath, stdio.Stdin)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitFailure
	}
	emails, err := readInput(*emailsPath, stdio.Stdin)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitFailure
	}

	// Banners are echoed to stderr as they happen and never need expiring.
	n := notify.New(time.Hour, logger,
		notify.WithScheduler(func(time.Duration, func()) {}),
		notify.WithObserver(func(b notify.Banner) {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", b.Kind, b.Message)
		}))
	ctrl, err := workspace.New(workspace.Options{
		VendorID: id.String(),
		Actions:  *actions,
		Notifier: n,
		Messages: workspace.NewMessages(*locale),
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	res := ctrl.Generate(*locale, workspace.Form{
		Identifiers: ids,
		Emails:      emails,
		Action:      *action,
		VendorName:  *vendorName,
		Country:     *country,
	})
	if !res.OK() {
		return ExitAborted
	}

	body, err := workspace.Encode(res.Records, f)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitFailure
	}
	if err := writeOutput(*out, stdio.Stdout, body); err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitFailure
	}
	logger.Info("export written", zap.String("out", *out), zap.Int("records", res.Records.Len()))
	return ExitOK
}

func formatCmd(binName string, args []string, stdio IO) int {
	if len(args) != 1 {
		fmt.Fprintf(stdio.Stderr, "Usage: %s format FILE\n", binName)
		return ExitUsage
	}
	text, err := readInput(args[0], stdio.Stdin)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "error: %v\n", err)
		return ExitFailure
	}
	out := cnpj.FormatLines(text)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(stdio.Stdout, out); err != nil {
		return ExitFailure
	}
	return ExitOK
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func writeOutput(path string, stdout io.Writer, body []byte) error {
	if path == "-" {
		_, err := stdout.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
