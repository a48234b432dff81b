// Package cli holds the pieces shared by the one-shot commands and the
// interactive console: output formats, table rendering, progress spinners,
// message formatting and the mapping from errors to exit codes.
package cli
