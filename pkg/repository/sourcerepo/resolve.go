package sourcerepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/utkarsh5026/srcobjects/pkg/common/err"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/repository/refs"
	"github.com/utkarsh5026/srcobjects/pkg/store"
)

// ResolveName turns a revision name into a digest. It tries, in order:
//
//  1. a full 40-character digest, returned as is
//  2. a reference: HEAD, refs/..., or a short name looked up under refs/,
//     refs/tags/ and refs/heads/
//  3. a unique digest prefix of at least 4 hex characters
func (sr *SourceRepository) ResolveName(name string) (objects.ObjectHash, error) {
	if !sr.initialized {
		return "", fmt.Errorf("repository not initialized")
	}

	name = strings.TrimSpace(name)
	if hash, e := objects.NewObjectHashFromString(name); e == nil {
		return hash, nil
	}

	ref, e := sr.refs.Resolve(name)
	if e == nil {
		return ref.Hash, nil
	}
	if !errors.Is(e, refs.ErrRefNotFound) {
		return "", e
	}

	if len(name) >= store.MinPrefixLength {
		matches, e := sr.objectStore.FindByPrefix(name)
		if e != nil && !errors.Is(e, objects.ErrMalformedHash) {
			return "", e
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return "", err.New("refs", refs.CodeAmbiguousName, "resolve",
				fmt.Sprintf("short digest %s is ambiguous (%d candidates)", name, len(matches)), nil).
				WithContext("candidates", matches)
		}
	}

	return "", err.New("refs", refs.CodeRefNotFound, "resolve",
		fmt.Sprintf("unknown revision %q", name), nil)
}
