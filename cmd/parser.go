package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	return &Parser{
		flagSet: flagSet,
	}
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flagName] = flag.Default
		}
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			args.Args = append(args.Args, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			flagName, exists := longToName[key]
			if !exists {
				return nil, fmt.Errorf("unknown flag: --%s", key)
			}

			flag := cp.flagSet.Flags[flagName]
			if flag.Type == "bool" {
				cp.set(args, flagName, true)
			} else if hasValue {
				cp.set(args, flagName, coerce(value, flag.Type))
			} else if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
				cp.set(args, flagName, coerce(raw[i+1], flag.Type))
				i++
			} else {
				return nil, fmt.Errorf("flag %s requires a value", key)
			}
			continue
		}

		if strings.HasPrefix(arg, "-") && len(arg) > 1 && arg != "-" {
			shortFlags := arg[1:]

			for j, shortChar := range shortFlags {
				shortStr := string(shortChar)
				flagName, exists := shortToName[shortStr]
				if !exists {
					return nil, fmt.Errorf("unknown flag: -%s", shortStr)
				}

				flag := cp.flagSet.Flags[flagName]

				if flag.Type == "bool" {
					cp.set(args, flagName, true)
					continue
				}

				if j+1 < len(shortFlags) {
					cp.set(args, flagName, coerce(shortFlags[j+1:], flag.Type))
					break
				} else if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
					cp.set(args, flagName, coerce(raw[i+1], flag.Type))
					i++
				} else {
					return nil, fmt.Errorf("flag -%s requires a value", shortStr)
				}
			}
			continue
		}

		args.Args = append(args.Args, arg)
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Required {
			if _, ok := args.Flags[flagName]; !ok {
				if flag.Short != "" {
					return nil, fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
				}
				return nil, fmt.Errorf("required flag: --%s", flag.Name)
			}
		}
	}

	return args, nil
}

// set stores a parsed flag value, collecting repeatable flags into a
// slice instead of overwriting earlier occurrences.
func (cp *Parser) set(args *CommandArgs, flagName string, value any) {
	flag := cp.flagSet.Flags[flagName]
	if flag == nil || !flag.Multiple {
		args.Flags[flagName] = value
		return
	}

	existing, _ := args.Flags[flagName].([]string)
	if s, ok := value.(string); ok {
		args.Flags[flagName] = append(existing, s)
	}
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func coerce(value string, typeStr string) any {
	switch typeStr {
	case "string":
		return value
	case "int":
		v, _ := strconv.ParseInt(value, 10, 64)
		return v
	case "bool":
		return value == "true" || value == "1" || value == "yes"
	default:
		return value
	}
}
