package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin, returning the default when the
// user just presses enter.
func ReadString(prompt, defaultValue string) string {
	reader := bufio.NewReader(os.Stdin)
	if defaultValue != "" {
		PrintInfo(fmt.Sprintf("%s [%s]: ", prompt, defaultValue))
	} else {
		PrintInfo(prompt + ": ")
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

// ReadInt reads an integer from stdin with a default and validation.
func ReadInt(prompt string, defaultValue, min, max int) (int, error) {
	input := ReadString(prompt, strconv.Itoa(defaultValue))
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return value, nil
}

// ReadFloat reads a float from stdin with a default.
func ReadFloat(prompt string, defaultValue float64) (float64, error) {
	input := ReadString(prompt, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	return value, nil
}

// ReadMonths reads a comma-separated YYYY-MM list.
func ReadMonths(prompt string, defaultValue []string) []string {
	input := ReadString(prompt, strings.Join(defaultValue, ","))
	parts := strings.Split(input, ",")
	months := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			months = append(months, trimmed)
		}
	}
	return months
}

// ReadYesNo reads a y/n answer.
func ReadYesNo(prompt string, defaultYes bool) bool {
	defaultValue := "n"
	if defaultYes {
		defaultValue = "y"
	}
	input := strings.ToLower(ReadString(prompt, defaultValue))
	return input == "y" || input == "yes"
}
