// Package cmd provides output formatting utilities for unit-ops CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PrintOutput formats and prints data according to the specified output format.
func PrintOutput(format string, data interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		return printJSON(data)
	case "yaml", "yml":
		return printYAML(data)
	case "text":
		return printText(data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// printJSON outputs data as JSON.
func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML outputs data as YAML.
func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() {
		_ = encoder.Close()
	}()
	return encoder.Encode(data)
}

// printText outputs data in a human-readable text format. Callers with
// a richer text rendering handle it themselves; this is the fallback.
func printText(data interface{}) error {
	fmt.Printf("%+v\n", data)
	return nil
}
