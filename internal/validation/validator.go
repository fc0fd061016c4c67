package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	tablePattern     = regexp.MustCompile(`^[0-9a-fA-FxX,\s\[\]]+$`)
	separatorPattern = regexp.MustCompile(`[,\s\[\]]+`)
	namePattern      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
)

// ParseUint parses a decimal or 0x-prefixed hexadecimal value.
func ParseUint(input string) (uint64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("value cannot be empty")
	}
	v, err := strconv.ParseUint(input, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: must be decimal or 0x-prefixed hex", input)
	}
	return v, nil
}

// ParseTable parses a literal lookup table such as "0, 2, 0xB, ..." or
// "[0 2 11 ...]". Entries are decimal or 0x-prefixed hex.
func ParseTable(input string) ([]uint64, error) {
	input = SanitizeInput(input)
	if input == "" {
		return nil, fmt.Errorf("table cannot be empty")
	}

	if !tablePattern.MatchString(input) {
		return nil, fmt.Errorf("table contains invalid characters")
	}

	fields := separatorPattern.Split(input, -1)
	table := make([]uint64, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		v, err := ParseUint(field)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(table), err)
		}
		table = append(table, v)
	}

	if err := ValidateTableLength(len(table)); err != nil {
		return nil, err
	}

	return table, nil
}

// ValidateTableLength checks that a table has a power-of-two number of
// entries.
func ValidateTableLength(length int) error {
	if length == 0 {
		return fmt.Errorf("table cannot be empty")
	}
	if length&(length-1) != 0 {
		return fmt.Errorf("table length must be a power of two (got %d)", length)
	}
	return nil
}

// IsName reports whether input looks like a catalog name rather than a
// literal table.
func IsName(input string) bool {
	return namePattern.MatchString(strings.TrimSpace(input))
}

// ParseCell parses an "a,b" difference pair.
func ParseCell(input string) (uint64, uint64, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cell %q, expected format: a,b", input)
	}

	a, err := ParseUint(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid input difference: %w", err)
	}

	b, err := ParseUint(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid output difference: %w", err)
	}

	return a, b, nil
}

// SanitizeInput trims the input and normalises line endings to spaces.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, " ")
}
