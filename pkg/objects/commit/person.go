package commit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Person is an author, committer or tagger identity.
//
// Serialized form: "Name <email> unix-seconds ±HHMM"
// Example: "John Doe <john@example.com> 1609459200 +0000"
type Person struct {
	Name  string
	Email string
	When  time.Time
}

// forbiddenIdentityChars would break the one-line "Name <email>" form.
const forbiddenIdentityChars = "\r\n<>"

var personPattern = regexp.MustCompile(`^(.+) <([^>]+)> (\d+) ([+-]\d{4})$`)

// NewPerson creates a Person, trimming whitespace around name and email.
func NewPerson(name, email string, when time.Time) (*Person, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email format: %s", email)
	}
	if strings.ContainsAny(name, forbiddenIdentityChars) {
		return nil, fmt.Errorf("name %q contains a newline or angle bracket", name)
	}
	if strings.ContainsAny(email, forbiddenIdentityChars) {
		return nil, fmt.Errorf("email %q contains a newline or angle bracket", email)
	}

	return &Person{Name: name, Email: email, When: when}, nil
}

// FormatForGit renders the person as it appears after an "author", "committer"
// or "tagger" key.
func (p *Person) FormatForGit() string {
	_, offset := p.When.Zone()

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	return fmt.Sprintf("%s <%s> %d %s%02d%02d",
		p.Name, p.Email, p.When.Unix(), sign, offset/3600, (offset%3600)/60)
}

// ParsePerson is the inverse of FormatForGit.
func ParsePerson(s string) (*Person, error) {
	matches := personPattern.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid person format: %s", s)
	}

	timestamp, err := strconv.ParseInt(matches[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	location, err := parseTimezone(matches[4])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	return NewPerson(matches[1], matches[2], time.Unix(timestamp, 0).In(location))
}

// String returns a human-readable representation
func (p *Person) String() string {
	return fmt.Sprintf("%s <%s> at %s", p.Name, p.Email, p.When.Format(time.RFC3339))
}

// Equal compares identity and instant, ignoring the zone.
func (p *Person) Equal(other *Person) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name &&
		p.Email == other.Email &&
		p.When.Unix() == other.When.Unix()
}

// parseTimezone parses "+0530" or "-0800" into a fixed zone.
func parseTimezone(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("invalid timezone: %s", tz)
	}

	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone hours: %w", err)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone minutes: %w", err)
	}

	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}

	return time.FixedZone(tz, offset), nil
}
