package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"github.com/amterp/ra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Print the whole collection")

	ctx.ExportFormat, _ = ra.NewString("format").
		SetShort("F").
		SetOptional(true).
		SetFlagOnly(true).
		SetDefault(formatJSON).
		SetEnumConstraint([]string{formatJSON, formatYAML}).
		SetUsage("Output format").
		Register(cmd)

	ctx.ExportOutput, _ = ra.NewString("output").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Write to this file instead of stdout").
		Register(cmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExport(format, output string) {
	app := mustApp(false)
	defer app.Close()

	data, err := encodeExport(app.Collection, format)
	if err != nil {
		Fatal(err)
	}

	if output == "" {
		if _, err := io.WriteString(os.Stdout, data); err != nil {
			Fatal(err)
		}
		return
	}

	if err := os.WriteFile(output, []byte(data), 0644); err != nil {
		Fatal(err)
	}
	PrintSuccess("Exported %d card(s) to %s", app.Collection.Len(), output)
}

// encodeExport renders c in format. JSON output is the persisted layout,
// so an export can be copied into a data directory as-is.
func encodeExport(c model.Collection, format string) (string, error) {
	switch format {
	case "", formatJSON:
		data, err := store.EncodeCollection(c)
		if err != nil {
			return "", err
		}
		return data + "\n", nil
	case formatYAML:
		data, err := yaml.Marshal(c.Normalize())
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unsupported format: %s (supported: %s, %s)", format, formatJSON, formatYAML)
}
