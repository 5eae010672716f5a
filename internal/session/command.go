package session

import (
	"strconv"
	"strings"
)

// ExitKeyword ends the session, matched case-insensitively.
const ExitKeyword = "exit"

// CommandKind classifies one line of user input.
type CommandKind int

const (
	Empty CommandKind = iota
	Exit
	Select
	Navigate
	Search
)

func (k CommandKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Exit:
		return "exit"
	case Select:
		return "select"
	case Navigate:
		return "navigate"
	case Search:
		return "search"
	default:
		return "unknown"
	}
}

// Command is a classified input line.
type Command struct {
	Kind CommandKind
	// Index is the zero-based element index for Select; -1 when the number
	// cannot address any element.
	Index int
	// Text is the URL for Navigate and the query for Search.
	Text string
}

// ParseCommand classifies line. Precedence: exit keyword, all-digit
// element number, anything starting with "http", then free-text search.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return Command{Kind: Empty}
	case strings.EqualFold(line, ExitKeyword):
		return Command{Kind: Exit}
	case isDigits(line):
		n, err := strconv.Atoi(line)
		if err != nil {
			return Command{Kind: Select, Index: -1}
		}
		return Command{Kind: Select, Index: n - 1}
	case strings.HasPrefix(line, "http"):
		return Command{Kind: Navigate, Text: line}
	default:
		return Command{Kind: Search, Text: line}
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
