package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleYesLiteral                       = "yes"
	toggleNoLiteral                        = "no"
	toggleOnLiteral                        = "on"
	toggleOffLiteral                       = "off"
	toggleOneLiteral                       = "1"
	toggleZeroLiteral                      = "0"
	toggleTLiteral                         = "t"
	toggleFLiteral                         = "f"
	toggleYLiteral                         = "y"
	toggleNLiteral                         = "n"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleLongPrefixConstant               = "--"
	toggleShortPrefixConstant              = "-"
	toggleValueSeparatorConstant           = "="
	toggleArgumentTerminatorConstant       = "--"
	toggleValueTypeConstant                = "bool"
)

var (
	trueLiteralSet = map[string]struct{}{
		toggleTrueCanonicalValue: {},
		toggleYesLiteral:         {},
		toggleOnLiteral:          {},
		toggleOneLiteral:         {},
		toggleTLiteral:           {},
		toggleYLiteral:           {},
	}
	falseLiteralSet = map[string]struct{}{
		toggleFalseCanonicalValue: {},
		toggleNoLiteral:           {},
		toggleOffLiteral:          {},
		toggleZeroLiteral:         {},
		toggleFLiteral:            {},
		toggleNLiteral:            {},
	}
)

// ToggleSet tracks the yes/no flags registered for one command tree so their arguments can be normalized before parsing.
type ToggleSet struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

// NewToggleSet constructs an empty ToggleSet.
func NewToggleSet() *ToggleSet {
	return &ToggleSet{
		names:      map[string]struct{}{},
		shorthands: map[string]struct{}{},
	}
}

// Add registers a boolean toggle flag that accepts yes/no style values.
func (toggleSet *ToggleSet) Add(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if toggleSet == nil || flagSet == nil {
		return
	}
	if len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	if len(shorthand) > 0 {
		flagSet.VarP(toggleValue, name, shorthand, usage)
	} else {
		flagSet.Var(toggleValue, name, usage)
	}

	flag := flagSet.Lookup(name)
	if flag == nil {
		return
	}
	flag.NoOptDefVal = toggleTrueCanonicalValue
	flag.Usage = formatToggleUsage(usage, defaultValue)

	toggleSet.mutex.Lock()
	defer toggleSet.mutex.Unlock()
	toggleSet.names[name] = struct{}{}
	if len(shorthand) > 0 {
		toggleSet.shorthands[shorthand] = struct{}{}
	}
}

// Normalize rewrites "--flag value" into "--flag=value" for registered toggles.
// The following argument is only consumed when it is a recognized yes/no literal, so positional arguments survive.
func (toggleSet *ToggleSet) Normalize(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		current := arguments[index]
		if current == toggleArgumentTerminatorConstant {
			normalized = append(normalized, arguments[index:]...)
			break
		}

		if normalizedArgument, consumed := toggleSet.normalizeArgument(current, arguments, index); consumed > 0 {
			normalized = append(normalized, normalizedArgument)
			index += consumed
			continue
		}

		normalized = append(normalized, current)
		index++
	}

	return normalized
}

func (toggleSet *ToggleSet) normalizeArgument(current string, arguments []string, index int) (string, int) {
	var name string
	var registered bool
	switch {
	case strings.HasPrefix(current, toggleLongPrefixConstant):
		name = strings.TrimPrefix(current, toggleLongPrefixConstant)
		if strings.Contains(name, toggleValueSeparatorConstant) {
			return "", 0
		}
		registered = toggleSet.hasName(name)
	case strings.HasPrefix(current, toggleShortPrefixConstant):
		name = strings.TrimPrefix(current, toggleShortPrefixConstant)
		if len(name) != 1 {
			return "", 0
		}
		registered = toggleSet.hasShorthand(name)
	default:
		return "", 0
	}

	if !registered || index+1 >= len(arguments) {
		return "", 0
	}
	nextValue := arguments[index+1]
	if !isToggleLiteral(nextValue) {
		return "", 0
	}
	return current + toggleValueSeparatorConstant + nextValue, 2
}

func (toggleSet *ToggleSet) hasName(name string) bool {
	if toggleSet == nil || len(name) == 0 {
		return false
	}
	toggleSet.mutex.RLock()
	defer toggleSet.mutex.RUnlock()
	_, exists := toggleSet.names[name]
	return exists
}

func (toggleSet *ToggleSet) hasShorthand(shorthand string) bool {
	if toggleSet == nil {
		return false
	}
	toggleSet.mutex.RLock()
	defer toggleSet.mutex.RUnlock()
	_, exists := toggleSet.shorthands[shorthand]
	return exists
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf("`%s` %s", placeholder, trimmed)
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}

	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleValueTypeConstant
}

func isToggleLiteral(rawValue string) bool {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if _, isTrue := trueLiteralSet[normalizedValue]; isTrue {
		return true
	}
	_, isFalse := falseLiteralSet[normalizedValue]
	return isFalse
}

func parseToggleValue(rawValue string) (bool, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		trimmedValue = toggleTrueCanonicalValue
	}

	normalizedValue := strings.ToLower(trimmedValue)
	if _, isTrue := trueLiteralSet[normalizedValue]; isTrue {
		return true, nil
	}
	if _, isFalse := falseLiteralSet[normalizedValue]; isFalse {
		return false, nil
	}

	return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
}
