package ui

import (
	"fmt"
	"strings"
)

// FormatKind colors an object kind name.
func FormatKind(kind string) string {
	switch kind {
	case "blob":
		return BlobStyle.Render(kind)
	case "tree":
		return TreeStyle.Render(kind)
	case "commit":
		return CommitStyle.Render(kind)
	case "tag":
		return TagStyle.Render(kind)
	default:
		return kind
	}
}

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconCheckmark), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

func ErrorMessage(message string) string {
	return fmt.Sprintf("%s %s", Red(IconCross), Red(message))
}

func WarningMessage(message string) string {
	return fmt.Sprintf("%s %s", Yellow(IconWarning), Yellow(message))
}

// ObjectCard is the summary shown for a commit or tag.
type ObjectCard struct {
	Hash    string
	Kind    string
	Target  string // tree for commits, tagged object for tags
	Parents []string
	Person  string
	Date    string
	Message string
}

// FormatObjectCard renders a commit or tag inside a box.
func FormatObjectCard(card ObjectCard) string {
	var content strings.Builder

	fmt.Fprintf(&content, "%s %s %s\n", Yellow(IconObject), FormatKind(card.Kind), Yellow(card.Hash))
	fmt.Fprintf(&content, "%s %s\n", Gray(IconArrow), Cyan(card.Target))
	for _, p := range card.Parents {
		fmt.Fprintf(&content, "%s %s\n", Gray("parent"), Cyan(p))
	}
	if card.Person != "" {
		fmt.Fprintf(&content, "%s %s\n", Cyan(IconAuthor), Cyan(card.Person))
	}
	if card.Date != "" {
		fmt.Fprintf(&content, "%s %s\n", Magenta(IconDate), Magenta(card.Date))
	}

	messageStyle := ColorCyanStyle.MarginTop(1)
	content.WriteString(messageStyle.Render(strings.TrimRight(card.Message, "\n")))

	return ObjectBox(content.String())
}
