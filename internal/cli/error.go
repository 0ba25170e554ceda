package cli

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hlop3z/alabintro/internal/alerr"
)

// locationKeys are context keys shown on the "-->" line, in order.
var locationKeys = []string{"path", "table", "column"}

// FormatError formats an error for CLI display in Cargo/rustc style.
// An *alerr.Error anywhere in the chain contributes its code, context and
// help; other errors are shown as a single line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var ae *alerr.Error
	if errors.As(err, &ae) {
		return formatAlabError(ae)
	}
	return formatGenericError(err)
}

// formatAlabError renders:
//
//	error[E8004]: metadata file is not valid JSON
//	  --> alabintro.meta.json
//	   |
//	   | line: 3
//	help: delete the file to regenerate names
//	   |
//	cause: unexpected end of JSON input
func formatAlabError(err *alerr.Error) string {
	var b strings.Builder
	ctx := err.GetContext()

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	var loc []string
	for _, k := range locationKeys {
		if v, ok := ctx[k]; ok {
			loc = append(loc, fmt.Sprint(v))
		}
	}
	if len(loc) > 0 {
		b.WriteString("  ")
		b.WriteString(Arrow())
		b.WriteString(" ")
		b.WriteString(FilePath(strings.Join(loc, ".")))
		b.WriteString("\n")
	}

	var details []string
	for k, v := range ctx {
		if slices.Contains(locationKeys, k) {
			continue
		}
		details = append(details, fmt.Sprintf("%s: %v", k, v))
	}
	sort.Strings(details)
	if len(details) > 0 {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		for _, d := range details {
			b.WriteString("   ")
			b.WriteString(Pipe())
			b.WriteString(" ")
			b.WriteString(d)
			b.WriteString("\n")
		}
	}

	for _, help := range err.Helps() {
		b.WriteString(FormatHelp(help))
	}

	if cause := err.GetCause(); cause != nil {
		b.WriteString("   ")
		b.WriteString(Pipe())
		b.WriteString("\n")
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(cause.Error())
		b.WriteString("\n")
	}

	return b.String()
}

// formatGenericError formats a non-alerr error.
func formatGenericError(err error) string {
	return Error("error") + ": " + err.Error() + "\n"
}

// FormatWarning formats a warning message.
func FormatWarning(msg string) string {
	return Warning("warning") + ": " + msg + "\n"
}

// FormatNote formats a note message.
func FormatNote(msg string) string {
	return Note("note") + ": " + msg + "\n"
}

// FormatHelp formats a help message.
func FormatHelp(msg string) string {
	return Help("help") + ": " + msg + "\n"
}

// FormatSuccess formats a success message.
func FormatSuccess(msg string) string {
	return Success("success") + ": " + msg + "\n"
}
