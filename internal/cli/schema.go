package cli

import (
	"encoding/json"
	"strings"

	"github.com/vburojevic/convlog/internal/output"
)

// schemaTypes lists the NDJSON output types in emission order
var schemaTypes = []string{"files_found", "file_error", "report", "summary", "error", "version", "config", "doctor"}

// SchemaCmd outputs JSON Schema for convlog output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (files_found,file_error,report,summary,error,version,config,doctor). Default: all"`
}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	schemas := map[string]map[string]interface{}{
		"files_found": filesFoundSchema(),
		"file_error":  fileErrorSchema(),
		"report":      reportSchema(),
		"summary":     summarySchema(),
		"error":       errorSchema(),
		"version":     versionSchema(),
		"config":      configSchema(),
		"doctor":      doctorSchema(),
	}

	typesToOutput := c.Type
	if len(typesToOutput) == 0 {
		typesToOutput = schemaTypes
	}

	defs := map[string]interface{}{}
	for _, t := range typesToOutput {
		t = strings.ToLower(strings.TrimSpace(t))
		if schema, ok := schemas[t]; ok {
			defs[t] = schema
		}
	}

	schemaOutput := map[string]interface{}{
		"$schema":       "http://json-schema.org/draft-07/schema#",
		"title":         "convlog Output Schemas",
		"description":   "JSON Schema definitions for all convlog NDJSON output types",
		"schemaVersion": output.SchemaVersion,
		"definitions":   defs,
	}

	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(schemaOutput)
}

// schemaVersionProperty returns the schemaVersion property definition
func schemaVersionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"const":       output.SchemaVersion,
		"description": "Schema version for compatibility detection",
	}
}

func typeProperty(name string) map[string]interface{} {
	return map[string]interface{}{
		"type":  "string",
		"const": name,
	}
}

func runIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"format":      "uuid",
		"description": "Identifier shared by every event of one run",
	}
}

func levelCountsProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"CRITICAL": map[string]interface{}{"type": "integer"},
			"ERROR":    map[string]interface{}{"type": "integer"},
			"WARNING":  map[string]interface{}{"type": "integer"},
		},
	}
}

func filesFoundSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Files Found",
		"description": "Emitted once, after input discovery",
		"properties": map[string]interface{}{
			"type":          typeProperty("files_found"),
			"schemaVersion": schemaVersionProperty(),
			"run_id":        runIDProperty(),
			"input": map[string]interface{}{
				"type":        "string",
				"description": "Input path as given",
			},
			"count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of files that will be scanned",
			},
			"files": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Files in scan order: *.log then *.txt, each sorted",
			},
		},
		"required": []string{"type", "schemaVersion", "run_id", "input", "count", "files"},
	}
}

func fileErrorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "File Error",
		"description": "A file that could not be read. The run continues with the next file",
		"properties": map[string]interface{}{
			"type":          typeProperty("file_error"),
			"schemaVersion": schemaVersionProperty(),
			"run_id":        runIDProperty(),
			"path": map[string]interface{}{
				"type": "string",
			},
			"error": map[string]interface{}{
				"type":        "string",
				"description": "Why the file was skipped",
			},
		},
		"required": []string{"type", "schemaVersion", "run_id", "path", "error"},
	}
}

func reportSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Report",
		"description": "A report file that was written",
		"properties": map[string]interface{}{
			"type":          typeProperty("report"),
			"schemaVersion": schemaVersionProperty(),
			"run_id":        runIDProperty(),
			"format": map[string]interface{}{
				"type": "string",
				"enum": []string{"csv", "markdown"},
			},
			"kind": map[string]interface{}{
				"type": "string",
				"enum": []string{"summary", "detailed"},
			},
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the report, named <kind>_YYYYMMDD_HHMMSS.<ext>",
			},
		},
		"required": []string{"type", "schemaVersion", "run_id", "format", "kind", "path"},
	}
}

func summarySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Summary",
		"description": "Final counts of a run, emitted last",
		"properties": map[string]interface{}{
			"type":          typeProperty("summary"),
			"schemaVersion": schemaVersionProperty(),
			"run_id":        runIDProperty(),
			"total_entries": map[string]interface{}{
				"type":        "integer",
				"description": "Classified lines across all files",
			},
			"level_counts": levelCountsProperty("Entries per level; every level is present"),
			"step_counts": map[string]interface{}{
				"type":                 "object",
				"description":          "Entries per level for each step tag; zero counts are omitted",
				"additionalProperties": levelCountsProperty("Entries per level for one step"),
			},
			"steps": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Step names in sorted order",
			},
			"files_scanned": map[string]interface{}{
				"type": "integer",
			},
			"file_errors": map[string]interface{}{
				"type": "integer",
			},
			"filtered": map[string]interface{}{
				"type":        "integer",
				"description": "Entries dropped by --min-level, --pattern, --exclude or --step",
			},
			"duration_ms": map[string]interface{}{
				"type": "integer",
			},
			"patterns": map[string]interface{}{
				"type":        "array",
				"description": "Recurring CRITICAL and ERROR messages after normalizing numbers, hex and UUIDs",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"level":   map[string]interface{}{"type": "string", "enum": []string{"CRITICAL", "ERROR"}},
						"pattern": map[string]interface{}{"type": "string"},
						"count":   map[string]interface{}{"type": "integer"},
						"samples": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					},
				},
			},
		},
		"required": []string{"type", "schemaVersion", "run_id", "total_entries", "level_counts", "step_counts", "steps", "files_scanned", "file_errors", "duration_ms"},
	}
}

func errorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Error",
		"description": "Error message from convlog",
		"properties": map[string]interface{}{
			"type":          typeProperty("error"),
			"schemaVersion": schemaVersionProperty(),
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Machine-readable error code for programmatic handling",
				"enum": []string{
					CodeInvalidInput,
					CodeNoInputFiles,
					CodeInvalidEncoding,
					CodeInvalidFormat,
					CodeInvalidFilter,
					CodeReportFailed,
					CodeNotInteractive,
					CodeCancelled,
					CodeAnalyzeFailed,
					CodeTUIFailed,
				},
			},
			"message": map[string]interface{}{
				"type":        "string",
				"description": "Human-readable error description",
			},
			"hint": map[string]interface{}{
				"type":        "string",
				"description": "Suggested fix",
			},
		},
		"required": []string{"type", "schemaVersion", "code", "message"},
	}
}

func versionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":  "object",
		"title": "Version",
		"properties": map[string]interface{}{
			"type":          typeProperty("version"),
			"schemaVersion": schemaVersionProperty(),
			"version":       map[string]interface{}{"type": "string"},
			"commit":        map[string]interface{}{"type": "string"},
		},
		"required": []string{"type", "schemaVersion", "version", "commit"},
	}
}

func configSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Config",
		"description": "Effective configuration from convlog config show",
		"properties": map[string]interface{}{
			"type":          typeProperty("config"),
			"schemaVersion": schemaVersionProperty(),
			"config_file": map[string]interface{}{
				"type":        "string",
				"description": "Config file in use; absent when running on defaults",
			},
			"config": map[string]interface{}{
				"type": "object",
			},
		},
		"required": []string{"type", "schemaVersion"},
	}
}

func doctorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Doctor Report",
		"description": "Environment checks from convlog doctor",
		"properties": map[string]interface{}{
			"type":          typeProperty("doctor"),
			"schemaVersion": schemaVersionProperty(),
			"checks": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":    map[string]interface{}{"type": "string"},
						"status":  map[string]interface{}{"type": "string", "enum": []string{"ok", "warning", "error"}},
						"message": map[string]interface{}{"type": "string"},
						"details": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name", "status"},
				},
			},
			"all_passed":  map[string]interface{}{"type": "boolean"},
			"error_count": map[string]interface{}{"type": "integer"},
			"warn_count":  map[string]interface{}{"type": "integer"},
		},
		"required": []string{"type", "schemaVersion", "checks", "all_passed", "error_count", "warn_count"},
	}
}
