package commit

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

const pkgName = "commit"

// Header keys.
const (
	keyTree      = "tree"
	keyParent    = "parent"
	keyAuthor    = "author"
	keyCommitter = "committer"
	keyGPGSig    = "gpgsig"

	// legacyCommitterKey is a misspelling found in older repositories. It is
	// accepted on read and never written.
	legacyCommitterKey = "commiter"

	// sigEndMarker terminates a folded signature.
	sigEndMarker = "END"
)

// Commit is a snapshot in history: a root tree, its parents and who made it.
//
// Payload layout:
//
//	tree <hex digest>
//	parent <hex digest>        (zero or more)
//	author <identity>
//	committer <identity>
//	gpgsig <signature>         (optional)
//	<blank line>
//	<message>
//
// Author and committer are kept as the raw text after their key, so identities
// that do not follow the "Name <email> seconds zone" convention still round-trip.
// Use Person to build or parse the conventional form.
type Commit struct {
	Tree      objects.ObjectHash
	Parents   []objects.ObjectHash
	Author    string
	Committer string
	// GPGSig is the folded signature: every signature line with leading
	// whitespace removed, concatenated without separators.
	GPGSig  string
	Message string
}

// Type returns the object type
func (c *Commit) Type() objects.ObjectType {
	return objects.CommitType
}

// Validate checks that the mandatory fields are present.
func (c *Commit) Validate() error {
	switch {
	case c.Tree == "":
		return missingField(keyTree)
	case c.Author == "":
		return missingField(keyAuthor)
	case c.Committer == "":
		return missingField(keyCommitter)
	}
	return nil
}

// Serialize renders the header lines, a blank line and the message.
func (c *Commit) Serialize() (objects.ObjectContent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.checkEncodable(); err != nil {
		return nil, err
	}

	var buf strings.Builder
	writeHeader(&buf, keyTree, c.Tree.String())
	for _, parent := range c.Parents {
		writeHeader(&buf, keyParent, parent.String())
	}
	writeHeader(&buf, keyAuthor, c.Author)
	writeHeader(&buf, keyCommitter, c.Committer)
	if c.GPGSig != "" {
		writeHeader(&buf, keyGPGSig, c.GPGSig)
	}
	buf.WriteString("\n")
	buf.WriteString(c.Message)

	return objects.ObjectContent(buf.String()), nil
}

// checkEncodable rejects values the reader could not parse back: digests that
// are not 40 lowercase hex characters and header values spanning lines.
func (c *Commit) checkEncodable() error {
	if err := c.Tree.Validate(); err != nil {
		return objects.NewError(pkgName, objects.CodeMalformedCommit, "encode",
			fmt.Sprintf("invalid tree digest %q", c.Tree), err)
	}
	for _, parent := range c.Parents {
		if err := parent.Validate(); err != nil {
			return objects.NewError(pkgName, objects.CodeMalformedCommit, "encode",
				fmt.Sprintf("invalid parent digest %q", parent), err)
		}
	}
	for _, h := range []struct{ key, value string }{
		{keyAuthor, c.Author},
		{keyCommitter, c.Committer},
		{keyGPGSig, c.GPGSig},
	} {
		if strings.ContainsAny(h.value, "\r\n") {
			return malformed("encode", fmt.Sprintf("%s value spans more than one line", h.key))
		}
	}
	if c.GPGSig != "" && !strings.Contains(c.GPGSig, sigEndMarker) {
		return malformed("encode", "signature has no END marker")
	}
	return nil
}

func writeHeader(buf *strings.Builder, key, value string) {
	buf.WriteString(key)
	buf.WriteByte(' ')
	buf.WriteString(value)
	buf.WriteByte('\n')
}

// Deserialize parses a commit payload.
//
// After a gpgsig line, following lines are folded into the signature with their
// leading whitespace trimmed, until a line containing END has been consumed.
// Blank lines inside the fold are skipped. A gpgsig value that already contains
// END needs no folding.
func (c *Commit) Deserialize(data objects.ObjectContent) error {
	parsed := Commit{}
	lines := strings.Split(string(data), "\n")

	var (
		seen    = make(map[string]bool)
		folding bool
	)

	for i, line := range lines {
		if folding {
			trimmed := strings.TrimLeft(line, " \t")
			if trimmed == "" {
				continue
			}
			parsed.GPGSig += trimmed
			if strings.Contains(trimmed, sigEndMarker) {
				folding = false
			}
			continue
		}

		if line == "" {
			parsed.Message = strings.Join(lines[i+1:], "\n")
			break
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return malformed("decode", fmt.Sprintf("header line %d has no value: %q", i+1, line))
		}
		if key == legacyCommitterKey {
			key = keyCommitter
		}
		if key != keyParent && seen[key] {
			return malformed("decode", fmt.Sprintf("duplicate %q header", key))
		}
		seen[key] = true

		switch key {
		case keyTree:
			h, err := parseHash(key, value)
			if err != nil {
				return err
			}
			parsed.Tree = h
		case keyParent:
			h, err := parseHash(key, value)
			if err != nil {
				return err
			}
			parsed.Parents = append(parsed.Parents, h)
		case keyAuthor:
			parsed.Author = value
		case keyCommitter:
			parsed.Committer = value
		case keyGPGSig:
			parsed.GPGSig = value
			folding = !strings.Contains(value, sigEndMarker)
		default:
			return malformed("decode", fmt.Sprintf("unknown header %q", key))
		}
	}

	if folding {
		return malformed("decode", "signature not terminated by an END line")
	}
	if err := parsed.Validate(); err != nil {
		return err
	}

	*c = parsed
	return nil
}

func parseHash(key, value string) (objects.ObjectHash, error) {
	h, err := objects.NewObjectHashFromString(value)
	if err != nil {
		return "", objects.NewError(pkgName, objects.CodeMalformedCommit, "decode",
			fmt.Sprintf("invalid %s digest %q", key, value), err)
	}
	return h, nil
}

func malformed(op, msg string) error {
	return objects.NewError(pkgName, objects.CodeMalformedCommit, op, msg, nil)
}

func missingField(key string) error {
	return objects.NewError(pkgName, objects.CodeMissingCommitField, "validate",
		fmt.Sprintf("%s is required", key), nil)
}

// Hash returns the digest of the commit's envelope.
func (c *Commit) Hash() (objects.ObjectHash, error) {
	return objects.HashObject(c)
}

// IsInitialCommit returns true if this commit has no parents
func (c *Commit) IsInitialCommit() bool {
	return len(c.Parents) == 0
}

// IsMergeCommit returns true if this commit has multiple parents
func (c *Commit) IsMergeCommit() bool {
	return len(c.Parents) > 1
}

// IsSigned reports whether the commit carries a gpgsig header.
func (c *Commit) IsSigned() bool {
	return c.GPGSig != ""
}

// AuthorPerson parses the author identity.
func (c *Commit) AuthorPerson() (*Person, error) {
	return ParsePerson(c.Author)
}

// CommitterPerson parses the committer identity.
func (c *Commit) CommitterPerson() (*Person, error) {
	return ParsePerson(c.Committer)
}

// String returns a human-readable representation
func (c *Commit) String() string {
	hash, err := c.Hash()
	if err != nil {
		return fmt.Sprintf("Commit{tree: %s, parents: %d, error: %v}", c.Tree.Short(), len(c.Parents), err)
	}
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %d}", hash.Short(), c.Tree.Short(), len(c.Parents))
}
