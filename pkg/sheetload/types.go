package sheetload

import (
	"fmt"
	"strings"
)

// Mode selects between the production and development configuration.
type Mode string

// Deployment modes.
const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Label returns the short environment label printed at startup.
func (m Mode) Label() string {
	if m == ModeProduction {
		return "PRD"
	}
	return "DSV"
}

// Config is the process-wide configuration, selected once at startup.
// It is passed by value to every component that needs it and never mutated.
type Config struct {
	// Mode is the deployment mode the configuration was selected for.
	Mode Mode

	// DatabaseURL is the Postgres connection URI.
	// May be empty in production; that is reported on the first write.
	DatabaseURL string

	// SecretKey is carried for parity with the deployment environment.
	// Nothing in the import path reads it.
	SecretKey string

	// Debug enables verbose logging.
	Debug bool
}

// String renders the config without secrets.
func (c Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, DatabaseURL: %s, Debug: %t}", c.Mode, redactURL(c.DatabaseURL), c.Debug)
}

// redactURL hides the password portion of a URI.
func redactURL(u string) string {
	if u == "" {
		return "<unset>"
	}
	at := strings.LastIndex(u, "@")
	scheme := strings.Index(u, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return u
	}
	creds := u[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return u[:scheme+3] + creds[:colon] + ":***" + u[at:]
	}
	return u
}

// Outcome is the result of one worksheet task.
type Outcome struct {
	// Sheet is the worksheet name as it appears in the workbook.
	Sheet string

	// Table is the destination table name.
	Table string

	// Rows is the number of rows written on success.
	Rows int

	// Err is nil on success.
	Err error
}

// OK reports whether the worksheet was written.
func (o Outcome) OK() bool { return o.Err == nil }

// FileResult is the result of processing one spreadsheet file.
type FileResult struct {
	Path string

	// Err is set when the whole file was skipped (vanished or failed to open).
	// Outcomes is empty in that case.
	Err error

	Outcomes []Outcome
}

// TableName derives the destination table name from a worksheet name.
// Two worksheets differing only by case map to the same table.
func TableName(sheet string) string {
	return strings.ToLower(sheet)
}
