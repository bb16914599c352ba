// Package output renders analysis runs as JSON, YAML, or a text table.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"ccs/internal/analyze"
)

// Format names a supported output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", name)
	}
}

// Report is the rendered document: the findings plus a small summary so
// machine consumers need no second pass over the result list.
type Report struct {
	RunID     string           `json:"runId" yaml:"runId"`
	Root      string           `json:"root" yaml:"root"`
	Files     int              `json:"files" yaml:"files"`
	Functions int              `json:"functions" yaml:"functions"`
	MaxScore  int              `json:"maxScore" yaml:"maxScore"`
	Results   []analyze.Result `json:"results" yaml:"results"`
}

// NewReport builds a report from a run.
func NewReport(run *analyze.Run) *Report {
	report := &Report{
		RunID:     run.ID,
		Root:      run.Root,
		Files:     run.Files,
		Functions: len(run.Results),
		Results:   run.Results,
	}
	for _, res := range run.Results {
		if res.Complexity > report.MaxScore {
			report.MaxScore = res.Complexity
		}
	}
	return report
}

// Encode writes the report in the requested format.
func Encode(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, report)
	case FormatYAML:
		return encodeYAML(w, report)
	default:
		return renderText(w, report)
	}
}

func encodeJSON(w io.Writer, report *Report) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeYAML(w io.Writer, report *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

// renderText writes a human-readable table with one row per function and
// an indented breakdown of its scoring factors.
func renderText(w io.Writer, report *Report) error {
	if len(report.Results) == 0 {
		_, err := fmt.Fprintf(w, "No functions at or above threshold (%d files scanned)\n", report.Files)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tLINE\tFUNCTION\tCOMPLEXITY")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", res.FilePath, res.StartLine, res.Function, res.Complexity)
		for _, factor := range res.Factors {
			fmt.Fprintf(tw, "\t%d\t  +%d %s\t\n", factor.Line, factor.Increment, factor.Description)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d function(s) in %d file(s), max complexity %d\n",
		report.Functions, report.Files, report.MaxScore)
	return err
}

// SortBy orders results by a named key. "location" is the default order
// (file path, then start line); "complexity" sorts highest first with
// location as the tiebreak; "name" sorts by qualified function name.
func SortBy(results []analyze.Result, key string) error {
	switch key {
	case "", "location":
		analyze.SortResults(results)
	case "complexity":
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Complexity != results[j].Complexity {
				return results[i].Complexity > results[j].Complexity
			}
			if results[i].FilePath != results[j].FilePath {
				return results[i].FilePath < results[j].FilePath
			}
			return results[i].StartLine < results[j].StartLine
		})
	case "name":
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Function != results[j].Function {
				return results[i].Function < results[j].Function
			}
			return results[i].FilePath < results[j].FilePath
		})
	default:
		return fmt.Errorf("unknown sort key %q (want location, complexity, or name)", key)
	}
	return nil
}
