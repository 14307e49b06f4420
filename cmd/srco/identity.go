package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
)

const (
	defaultIdentityName  = "srco"
	defaultIdentityEmail = "srco@localhost"
)

// identityFromEnv builds a person from SRCO_<role>_NAME, _EMAIL and _DATE,
// falling back to the author variables and then to built-in defaults.
// _DATE accepts unix seconds or RFC 3339.
func identityFromEnv(role string) (*commit.Person, error) {
	lookup := func(field, fallback string) string {
		if v := os.Getenv("SRCO_" + role + "_" + field); v != "" {
			return v
		}
		if v := os.Getenv("SRCO_AUTHOR_" + field); v != "" {
			return v
		}
		return fallback
	}

	when := time.Now()
	if raw := lookup("DATE", ""); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SRCO_%s_DATE: %w", role, err)
		}
		when = parsed
	}

	return commit.NewPerson(
		lookup("NAME", defaultIdentityName),
		lookup("EMAIL", defaultIdentityEmail),
		when,
	)
}

func parseDate(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}
