package tag

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

const pkgName = "tag"

const (
	keyObject = "object"
	keyType   = "type"
	keyTag    = "tag"
	keyTagger = "tagger"
)

// Tag is an annotated tag: a name and message attached to another object.
//
// Payload layout:
//
//	object <hex digest>
//	type <kind>
//	tag <name>
//	tagger <identity>          (optional)
//	<blank line>
//	<message>
type Tag struct {
	Object     objects.ObjectHash
	ObjectType objects.ObjectType
	Name       string
	Tagger     string
	Message    string
}

// Type returns the object type
func (t *Tag) Type() objects.ObjectType {
	return objects.TagType
}

// Validate checks the mandatory fields and the target kind.
func (t *Tag) Validate() error {
	switch {
	case t.Object == "":
		return missingField(keyObject)
	case t.ObjectType == "":
		return missingField(keyType)
	case t.Name == "":
		return missingField(keyTag)
	}
	if !t.ObjectType.IsValid() {
		return objects.NewError(pkgName, objects.CodeUnknownKind, "validate",
			fmt.Sprintf("unknown target type %q", t.ObjectType), nil)
	}
	return nil
}

// Serialize renders the header lines, a blank line and the message.
func (t *Tag) Serialize() (objects.ObjectContent, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := t.Object.Validate(); err != nil {
		return nil, objects.NewError(pkgName, objects.CodeMalformedCommit, "encode",
			fmt.Sprintf("invalid object digest %q", t.Object), err)
	}
	if strings.ContainsAny(t.Name, "\r\n") || strings.ContainsAny(t.Tagger, "\r\n") {
		return nil, objects.NewError(pkgName, objects.CodeMalformedCommit, "encode",
			"tag name and tagger must fit on one line", nil)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%s %s\n", keyObject, t.Object)
	fmt.Fprintf(&buf, "%s %s\n", keyType, t.ObjectType)
	fmt.Fprintf(&buf, "%s %s\n", keyTag, t.Name)
	if t.Tagger != "" {
		fmt.Fprintf(&buf, "%s %s\n", keyTagger, t.Tagger)
	}
	buf.WriteString("\n")
	buf.WriteString(t.Message)

	return objects.ObjectContent(buf.String()), nil
}

// Deserialize parses a tag payload. Headers are single-valued and unfolded.
func (t *Tag) Deserialize(data objects.ObjectContent) error {
	parsed := Tag{}
	seen := make(map[string]bool)
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		if line == "" {
			parsed.Message = strings.Join(lines[i+1:], "\n")
			break
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return malformed(fmt.Sprintf("header line %d has no value: %q", i+1, line))
		}
		if seen[key] {
			return malformed(fmt.Sprintf("duplicate %q header", key))
		}
		seen[key] = true

		switch key {
		case keyObject:
			h, err := objects.NewObjectHashFromString(value)
			if err != nil {
				return objects.NewError(pkgName, objects.CodeMalformedCommit, "decode",
					fmt.Sprintf("invalid object digest %q", value), err)
			}
			parsed.Object = h
		case keyType:
			parsed.ObjectType = objects.ObjectType(value)
		case keyTag:
			parsed.Name = value
		case keyTagger:
			parsed.Tagger = value
		default:
			return malformed(fmt.Sprintf("unknown header %q", key))
		}
	}

	if err := parsed.Validate(); err != nil {
		return err
	}

	*t = parsed
	return nil
}

func malformed(msg string) error {
	return objects.NewError(pkgName, objects.CodeMalformedCommit, "decode", msg, nil)
}

func missingField(key string) error {
	return objects.NewError(pkgName, objects.CodeMissingTagField, "validate",
		fmt.Sprintf("%s is required", key), nil)
}

// Hash returns the digest of the tag's envelope.
func (t *Tag) Hash() (objects.ObjectHash, error) {
	return objects.HashObject(t)
}

// String returns a human-readable representation
func (t *Tag) String() string {
	return fmt.Sprintf("Tag{name: %s, object: %s %s}", t.Name, t.ObjectType, t.Object.Short())
}
