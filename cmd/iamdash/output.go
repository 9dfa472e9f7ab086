package main

import (
	"encoding/json"
	"fmt"

	coreerrors "github.com/marven22/IAM-Dashboard/core/errors"
)

type errorEnvelope struct {
	OK            bool   `json:"ok"`
	Error         string `json:"error"`
	ErrorCode     string `json:"error_code,omitempty"`
	ErrorCategory string `json:"error_category,omitempty"`
	Hint          string `json:"hint,omitempty"`
}

func writeJSONOutput(output any, exitCode int) int {
	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Println(`{"ok":false,"error":"failed to encode output","error_code":"encode_failed","error_category":"internal_failure"}`)
		return exitInternalFailure
	}
	fmt.Println(string(encoded))
	return exitCode
}

func writeError(jsonOutput bool, err error) int {
	exitCode := exitCodeForError(err)
	if jsonOutput {
		return writeJSONOutput(errorEnvelope{
			Error:         err.Error(),
			ErrorCode:     coreerrors.CodeOf(err),
			ErrorCategory: string(coreerrors.CategoryOf(err)),
			Hint:          coreerrors.HintOf(err),
		}, exitCode)
	}
	fmt.Printf("error: %v\n", err)
	if hint := coreerrors.HintOf(err); hint != "" {
		fmt.Printf("hint: %s\n", hint)
	}
	return exitCode
}

func writeInvalidInput(jsonOutput bool, message string) int {
	if jsonOutput {
		return writeJSONOutput(errorEnvelope{
			Error:         message,
			ErrorCode:     "invalid_input",
			ErrorCategory: string(coreerrors.CategoryInvalidInput),
		}, exitInvalidInput)
	}
	fmt.Printf("error: %s\n", message)
	return exitInvalidInput
}

func exitCodeForError(err error) int {
	switch coreerrors.CategoryOf(err) {
	case coreerrors.CategoryInvalidInput:
		return exitInvalidInput
	case coreerrors.CategoryRecordNotFound:
		return exitNotFound
	case coreerrors.CategoryMalformedRecord:
		return exitMalformed
	default:
		return exitInternalFailure
	}
}
