package cmd

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// Bool returns the named flag as a bool, false when absent or untyped.
func (ca *CommandArgs) Bool(name string) bool {
	v, ok := ca.Flags[name].(bool)
	return ok && v
}

// String returns the named flag as a string, empty when absent or untyped.
func (ca *CommandArgs) String(name string) string {
	v, _ := ca.Flags[name].(string)
	return v
}

// Strings returns every value collected for a repeatable flag.
func (ca *CommandArgs) Strings(name string) []string {
	switch v := ca.Flags[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "long" or "l"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "l")
	Type        string `json:"type"`              // "string", "bool", "int"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
	Multiple    bool   `json:"multiple"`          // Can be specified multiple times
}
