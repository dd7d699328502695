package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subssa/internal/ass"
	"github.com/mgpai22/subssa/internal/config"
	"github.com/mgpai22/subssa/internal/subtitle"
	"github.com/mgpai22/subssa/internal/version"
	"github.com/spf13/cobra"
)

// output settings shared by convert and extract
type exportSettings struct {
	OutputPath string
	Encoding   string
	LineEnding string
}

func readExportSettings(cmd *cobra.Command, inputPath string) (exportSettings, error) {
	outputPath, _ := cmd.Flags().GetString("output")
	encoding, _ := cmd.Flags().GetString("encoding")
	lineEnding, _ := cmd.Flags().GetString("line-ending")

	if encoding == "" {
		encoding = cfg.Encoding
	}
	newline := cfg.Newline()
	if lineEnding != "" {
		var err error
		if newline, err = newlineFor(lineEnding); err != nil {
			return exportSettings{}, err
		}
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}

	return exportSettings{
		OutputPath: outputPath,
		Encoding:   encoding,
		LineEnding: newline,
	}, nil
}

func newlineFor(ending string) (string, error) {
	switch strings.ToLower(ending) {
	case config.LineEndingLF:
		return "\n", nil
	case config.LineEndingCRLF:
		return "\r\n", nil
	default:
		return "", fmt.Errorf("invalid line ending %q: use lf or crlf", ending)
	}
}

// input name with an .ssa extension, never the input itself
func defaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	out := base + subtitle.GetExtensionForFormat(subtitle.FormatSSA)
	if filepath.Clean(out) == filepath.Clean(inputPath) {
		out = base + ".v4" + subtitle.GetExtensionForFormat(subtitle.FormatSSA)
	}
	return out
}

// reads each file and appends it to doc as a font or graphic
func attachFiles(doc *ass.Document, paths []string) error {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read attachment: %w", err)
		}
		a := ass.NewAttachment(p, data)
		doc.AddAttachment(a)

		logger.Debugw("Attached file",
			"path", p,
			"name", a.Filename,
			"group", a.Group.String(),
			"bytes", len(data),
		)
	}
	return nil
}

func newExporter(settings exportSettings) *subtitle.SSAExporter {
	exporter := subtitle.NewSSAExporter(cfg.Generator, cfg.URL, version.Current())
	exporter.LineEnding = settings.LineEnding
	exporter.Logger = logger
	return exporter
}

func writeSSA(doc *ass.Document, settings exportSettings) error {
	warnMissingStyles(doc)

	logger.Infow("Writing SSA script",
		"output", settings.OutputPath,
		"encoding", settings.Encoding,
		"styles", len(doc.Styles),
		"events", len(doc.Events),
	)

	if err := newExporter(settings).Export(doc, settings.OutputPath, settings.Encoding); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(settings.OutputPath)
	fmt.Printf("Subtitles exported successfully: %s\n", absOutput)
	if title, ok := doc.GetInfo("Title"); ok && title != "" {
		fmt.Printf("  Title: %s\n", title)
	}
	fmt.Printf("  Styles: %d\n", len(doc.Styles))
	fmt.Printf("  Events: %d\n", len(doc.Events))
	if n := len(doc.Attachments); n > 0 {
		fmt.Printf("  Attachments: %d\n", n)
	}
	return nil
}

// events on styles the script never defines still export; players fall
// back to their own default
func warnMissingStyles(doc *ass.Document) {
	missing := make(map[string]int)
	for _, ev := range doc.Events {
		if doc.Style(ev.Style) == nil {
			missing[ev.Style]++
		}
	}
	for name, n := range missing {
		logger.Warnw("Events reference an undefined style",
			"style", name,
			"events", n,
		)
	}
}
