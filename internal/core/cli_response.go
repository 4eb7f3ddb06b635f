package core

import (
	"encoding/json"
	"os"
)

// CLIResponse is the structured JSON output emitted under --json.
//
// Schema:
//
//	{
//	  "success": true|false,
//	  "data": { ... },          // Command-specific payload (a failed scan still carries its report)
//	  "error": {                 // Present only on failure
//	    "code": "CONFIG_ERROR",
//	    "message": "Human-readable description"
//	  }
//	}
type CLIResponse struct {
	Success bool            `json:"success"`
	Data    interface{}     `json:"data,omitempty"`
	Error   *CLIErrorDetail `json:"error,omitempty"`
}

// CLIErrorDetail contains machine-readable error code and human-readable message.
type CLIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CLI exit codes. ExitViolations and ExitConfigError are deliberately distinct so
// CI systems can tell "the policy failed" from "the tool was misconfigured".
const (
	ExitSuccess          = 0
	ExitViolations       = 1
	ExitConfigError      = 2
	ExitInvalidArguments = 3
)

// CLI error codes for structured JSON error responses.
const (
	ErrCodeConfigError      = "CONFIG_ERROR"
	ErrCodePolicyViolations = "POLICY_VIOLATIONS"
	ErrCodeInvalidArguments = "INVALID_ARGUMENTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// EmitCLISuccess writes a successful CLIResponse as JSON to stdout.
func EmitCLISuccess(data interface{}) {
	resp := CLIResponse{Success: true, Data: data}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
}

// EmitCLIResponse writes an arbitrary CLIResponse as JSON to stdout.
// Used when a failed run still carries a data payload (e.g. a scan report
// with violations).
func EmitCLIResponse(resp CLIResponse) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
}

// EmitCLIError writes an error CLIResponse as JSON to stdout.
// Returns the exit code for the caller to use with os.Exit.
func EmitCLIError(code string, message string, exitCode int) int {
	resp := CLIResponse{
		Success: false,
		Error:   &CLIErrorDetail{Code: code, Message: message},
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) //nolint:errcheck
	return exitCode
}

// CLIExitCodeForError maps structured error types to CLI exit codes.
func CLIExitCodeForError(err error) int {
	switch {
	case IsConfigError(err):
		return ExitConfigError
	default:
		return ExitViolations
	}
}

// CLIErrorCodeForError maps structured error types to CLI error code strings.
func CLIErrorCodeForError(err error) string {
	switch {
	case IsConfigError(err):
		return ErrCodeConfigError
	default:
		return ErrCodeInternalError
	}
}
