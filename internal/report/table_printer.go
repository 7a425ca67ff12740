package report

import (
	"encoding/json"
	"fmt"

	"github.com/AnotherFullstackDev/awsecr/internal/container_registry"
	"github.com/AnotherFullstackDev/awsecr/internal/lib"
	uitable "github.com/cppforlife/go-cli-ui/ui/table"
	"gopkg.in/yaml.v3"
)

type Printer struct {
	ui     UI
	format Format
}

func NewPrinter(ui UI, format string) (*Printer, error) {
	switch f := Format(format); f {
	case FormatTable, FormatJSON, FormatYAML:
		return &Printer{ui: ui, format: f}, nil
	default:
		return nil, fmt.Errorf("%w - unsupported output format %q", lib.BadUserInputError, format)
	}
}

func (p *Printer) PrintImages(repository string, records []container_registry.ImageRecord) error {
	return p.print(fmt.Sprintf(imagesTitleFormat, repository), imagesContent, container_registry.ImageRows(records), records)
}

func (p *Printer) PrintRepositories(records []container_registry.RepositoryRecord) error {
	return p.print(repositoriesTitle, repositoriesContent, container_registry.RepositoryRows(records), records)
}

// print renders rows, whose first row is the header, as a table, or data as a document.
func (p *Printer) print(title, content string, rows [][]string, data any) error {
	switch p.format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s as json: %w", content, err)
		}
		p.ui.PrintBlock(append(encoded, '\n'))
	case FormatYAML:
		encoded, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("encoding %s as yaml: %w", content, err)
		}
		p.ui.PrintBlock(encoded)
	default:
		p.ui.PrintTable(newTable(title, content, rows))
	}
	return nil
}

func newTable(title, content string, rows [][]string) uitable.Table {
	table := uitable.Table{
		Title:   title,
		Content: content,
	}
	if len(rows) == 0 {
		return table
	}

	for _, name := range rows[0] {
		table.Header = append(table.Header, uitable.NewHeader(name))
	}
	for _, row := range rows[1:] {
		values := make([]uitable.Value, 0, len(row))
		for _, cell := range row {
			values = append(values, uitable.NewValueString(cell))
		}
		table.Rows = append(table.Rows, values)
	}
	return table
}
