package structures

import "net/http"

// CliFlags carries the values parsed from the command line.
type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	TablePath  string
}

type Route struct {
	Url     string
	Handler http.Handler
}
