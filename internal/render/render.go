// =============================================================================
// Sales Reporter - Renderer
// =============================================================================
//
// This module turns a report.Result into the bytes of one or more output
// files. The engine decides what a report contains; the renderer decides how
// it is spelled. Three output formats are supported:
//
//   xml   - indented document via internal/xmlwriter (default)
//   json  - indented JSON
//   yaml  - YAML document
//
// FILE LAYOUT:
//   Every report except the full dump is one file named after the configured
//   file name format. The full dump writes one file per shop, named after the
//   shop with path-unsafe characters replaced.
//
// Rendering is deterministic: the same result always yields the same bytes.
//
// =============================================================================

package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/sales-reporter/internal/command"
	"github.com/ginjaninja78/sales-reporter/internal/report"
	"github.com/ginjaninja78/sales-reporter/internal/xmlwriter"
	"github.com/ginjaninja78/sales-reporter/pkg/utils"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// OUTPUT FORMATS
// =============================================================================

// Format is an output encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name. The comparison is
// case-insensitive and "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected xml, json or yaml)", name)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer builds output files for report results.
type Renderer struct {
	// Format is the output encoding.
	Format Format

	// FileNameFormat names single-file reports. It accepts the placeholders
	// of utils.GenerateOutputFileName plus {command} and {input}.
	FileNameFormat string

	// Output, when set, is the exact file name of a single-file report and
	// overrides FileNameFormat.
	Output string
}

// Render encodes result into the files to write.
//
// PARAMETERS:
//   - result: The computed report.
//   - cmd: The command that produced it, used for file naming.
//   - input: The input file path, used for the {input} placeholder.
//
// RETURNS:
//   - The pending output files, in a stable order.
//   - An error if the result cannot be encoded.
func (r *Renderer) Render(result report.Result, cmd command.Command, input string) ([]utils.PendingFile, error) {
	if full, ok := result.(report.FullDump); ok {
		return r.renderShops(full)
	}

	data, err := r.Encode(result)
	if err != nil {
		return nil, err
	}

	name := r.Output
	if name == "" {
		base := filepath.Base(input)
		name = utils.GenerateOutputFileName(r.FileNameFormat, r.Format.Extension(), map[string]string{
			"command": command.Slug(cmd),
			"input":   strings.TrimSuffix(base, filepath.Ext(base)),
		})
	}

	return []utils.PendingFile{{Name: name, Data: data}}, nil
}

// Encode serializes a single-file report.
func (r *Renderer) Encode(result report.Result) ([]byte, error) {
	switch res := result.(type) {
	case report.HourlyRevenue:
		v := newHourlyView(res)
		return r.encode(v, hourlyElement(v))
	case report.DailyRevenue:
		v := newDailyView(res)
		return r.encode(v, dailyElement(v))
	case report.CityExtreme:
		v := newCityView(res)
		return r.encode(v, cityElement(v))
	case report.FullDump:
		return nil, fmt.Errorf("full report spans several files; use Render")
	default:
		return nil, fmt.Errorf("unsupported report result %T", result)
	}
}

// renderShops writes one file per shop, in first-appearance order.
func (r *Renderer) renderShops(full report.FullDump) ([]utils.PendingFile, error) {
	files := make([]utils.PendingFile, 0, len(full.Shops))
	names := newNameSet()

	for _, shop := range full.Shops {
		v := newShopView(shop)
		data, err := r.encode(v, shopElement(v))
		if err != nil {
			return nil, fmt.Errorf("failed to render shop %q: %w", shop.Shop, err)
		}

		name := names.claim(utils.SanitizeFileName(shop.Shop), r.Format.Extension())
		files = append(files, utils.PendingFile{Name: name, Data: data})
	}

	return files, nil
}

// encode writes the view in the configured format. XML uses the prepared
// element tree; JSON and YAML use the view's struct tags.
func (r *Renderer) encode(view any, root *xmlwriter.Element) ([]byte, error) {
	switch r.Format {
	case FormatXML, "":
		data, err := xmlwriter.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("failed to encode XML: %w", err)
		}
		return data, nil

	case FormatJSON:
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil

	case FormatYAML:
		var buffer bytes.Buffer
		encoder := yaml.NewEncoder(&buffer)
		encoder.SetIndent(2)
		if err := encoder.Encode(view); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported output format %q", r.Format)
	}
}

// nameSet hands out unique file names. Shops whose names sanitize to the same
// string get a numeric suffix in order of appearance.
type nameSet map[string]bool

func newNameSet() nameSet {
	return make(nameSet)
}

func (s nameSet) claim(stem, ext string) string {
	name := stem + ext
	for i := 2; s[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	s[strings.ToLower(name)] = true
	return name
}
