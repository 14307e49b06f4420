package commit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

const (
	treeHash   = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"
	parentHash = "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0"
	otherHash  = "ce013625030ba8dba906f756967f9e9ca394464a"
	identity   = "John Doe <john@example.com> 1609459200 +0000"
)

func TestCommitSerializeFormat(t *testing.T) {
	c := &Commit{
		Tree:      treeHash,
		Parents:   []objects.ObjectHash{parentHash, otherHash},
		Author:    identity,
		Committer: identity,
		Message:   "Initial commit\n",
	}

	payload, err := c.Serialize()
	require.NoError(t, err)

	want := "tree " + treeHash + "\n" +
		"parent " + parentHash + "\n" +
		"parent " + otherHash + "\n" +
		"author " + identity + "\n" +
		"committer " + identity + "\n" +
		"\n" +
		"Initial commit\n"
	assert.Equal(t, want, payload.String())
}

func TestCommitRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		commit Commit
	}{
		{
			name:   "root commit",
			commit: Commit{Tree: treeHash, Author: identity, Committer: identity, Message: "first"},
		},
		{
			name: "merge commit",
			commit: Commit{
				Tree:      treeHash,
				Parents:   []objects.ObjectHash{parentHash, otherHash},
				Author:    identity,
				Committer: "Someone Else <else@example.com> 1609459300 -0500",
				Message:   "Merge branch\n\nWith a body.\n",
			},
		},
		{
			name:   "empty message",
			commit: Commit{Tree: treeHash, Author: identity, Committer: identity},
		},
		{
			name: "signed",
			commit: Commit{
				Tree:      treeHash,
				Author:    identity,
				Committer: identity,
				GPGSig:    "-----BEGIN PGP SIGNATURE-----iQEzBAABCAAdFiEE-----END PGP SIGNATURE-----",
				Message:   "signed\n",
			},
		},
		{
			name:   "free-form identity",
			commit: Commit{Tree: treeHash, Author: "robot", Committer: "robot", Message: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := tt.commit.Serialize()
			require.NoError(t, err)

			var decoded Commit
			require.NoError(t, decoded.Deserialize(payload))
			assert.Equal(t, tt.commit, decoded)

			again, err := decoded.Serialize()
			require.NoError(t, err)
			assert.Equal(t, payload, again)
		})
	}
}

func TestCommitGPGSigFolding(t *testing.T) {
	payload := strings.Join([]string{
		"tree " + treeHash,
		"author " + identity,
		"committer " + identity,
		"gpgsig -----BEGIN PGP SIGNATURE-----",
		" ",
		" iQEzBAABCAAdFiEE",
		"   abc123==",
		" -----END PGP SIGNATURE-----",
		"",
		"signed commit",
	}, "\n")

	var c Commit
	require.NoError(t, c.Deserialize(objects.ObjectContent(payload)))

	assert.Equal(t, "-----BEGIN PGP SIGNATURE-----iQEzBAABCAAdFiEEabc123==-----END PGP SIGNATURE-----", c.GPGSig)
	assert.Equal(t, "signed commit", c.Message)
	assert.True(t, c.IsSigned())
}

func TestCommitGPGSigBeforeCommitter(t *testing.T) {
	// the fold ends at END, after which ordinary headers resume
	payload := strings.Join([]string{
		"tree " + treeHash,
		"author " + identity,
		"gpgsig BEGIN",
		" body",
		" END",
		"committer " + identity,
		"",
		"msg",
	}, "\n")

	var c Commit
	require.NoError(t, c.Deserialize(objects.ObjectContent(payload)))
	assert.Equal(t, "BEGINbodyEND", c.GPGSig)
	assert.Equal(t, identity, c.Committer)
}

func TestCommitUnterminatedSignature(t *testing.T) {
	payload := "tree " + treeHash + "\nauthor " + identity + "\ncommitter " + identity +
		"\ngpgsig BEGIN\n line\n\nmessage that never ends the fold"

	var c Commit
	err := c.Deserialize(objects.ObjectContent(payload))
	assert.True(t, errors.Is(err, objects.ErrMalformedCommit), "got %v", err)
}

func TestCommitLegacyCommitterKey(t *testing.T) {
	payload := "tree " + treeHash + "\nauthor " + identity + "\ncommiter " + identity + "\n\nold"

	var c Commit
	require.NoError(t, c.Deserialize(objects.ObjectContent(payload)))
	assert.Equal(t, identity, c.Committer)

	out, err := c.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\ncommitter ")
	assert.NotContains(t, out.String(), "commiter ")
}

func TestCommitNoBlankLine(t *testing.T) {
	payload := "tree " + treeHash + "\nauthor " + identity + "\ncommitter " + identity

	var c Commit
	require.NoError(t, c.Deserialize(objects.ObjectContent(payload)))
	assert.Empty(t, c.Message)
}

func TestCommitMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no tree", "author " + identity + "\ncommitter " + identity + "\n\nm"},
		{"no author", "tree " + treeHash + "\ncommitter " + identity + "\n\nm"},
		{"no committer", "tree " + treeHash + "\nauthor " + identity + "\n\nm"},
		{"empty payload", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Commit
			err := c.Deserialize(objects.ObjectContent(tt.payload))
			assert.True(t, errors.Is(err, objects.ErrMissingCommitField), "got %v", err)
		})
	}

	_, err := (&Commit{Tree: treeHash, Author: identity}).Serialize()
	assert.True(t, errors.Is(err, objects.ErrMissingCommitField))
}

func TestCommitMalformedHeaders(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no space", "tree\nauthor " + identity + "\ncommitter " + identity + "\n\n"},
		{"unknown key", "tree " + treeHash + "\nencoding utf-8\nauthor " + identity + "\ncommitter " + identity + "\n\n"},
		{"duplicate tree", "tree " + treeHash + "\ntree " + treeHash + "\nauthor " + identity + "\ncommitter " + identity + "\n\n"},
		{"duplicate committer spellings", "tree " + treeHash + "\nauthor " + identity + "\ncommitter " + identity + "\ncommiter " + identity + "\n\n"},
		{"bad tree digest", "tree nothex\nauthor " + identity + "\ncommitter " + identity + "\n\n"},
		{"bad parent digest", "tree " + treeHash + "\nparent 123\nauthor " + identity + "\ncommitter " + identity + "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Commit
			err := c.Deserialize(objects.ObjectContent(tt.payload))
			assert.True(t, errors.Is(err, objects.ErrMalformedCommit), "got %v", err)
		})
	}
}

func TestCommitFailedDeserializeLeavesReceiver(t *testing.T) {
	c := Commit{Tree: treeHash, Author: identity, Committer: identity, Message: "keep"}
	require.Error(t, c.Deserialize(objects.ObjectContent("garbage")))
	assert.Equal(t, "keep", c.Message)
}

func TestCommitSignatureWithoutEndRejectedOnWrite(t *testing.T) {
	c := &Commit{Tree: treeHash, Author: identity, Committer: identity, GPGSig: "BEGIN only"}
	_, err := c.Serialize()
	assert.True(t, errors.Is(err, objects.ErrMalformedCommit))
}

func TestCommitParentHelpers(t *testing.T) {
	root := &Commit{Tree: treeHash, Author: identity, Committer: identity}
	assert.True(t, root.IsInitialCommit())
	assert.False(t, root.IsMergeCommit())

	merge := &Commit{Tree: treeHash, Parents: []objects.ObjectHash{parentHash, otherHash}}
	assert.True(t, merge.IsMergeCommit())

	p, err := root.AuthorPerson()
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.Name)
}

var _ objects.BaseObject = (*Commit)(nil)

func TestCommitSerializeRejectsUnreadableFields(t *testing.T) {
	tests := []struct {
		name   string
		commit Commit
	}{
		{"tree not hex", Commit{Tree: "nothex", Author: identity, Committer: identity}},
		{"short parent", Commit{Tree: treeHash, Parents: []objects.ObjectHash{"x"}, Author: identity, Committer: identity}},
		{"uppercase parent", Commit{Tree: treeHash, Parents: []objects.ObjectHash{objects.ObjectHash(strings.ToUpper(parentHash))}, Author: identity, Committer: identity}},
		{"author injects a parent", Commit{Tree: treeHash, Author: "a\nparent x", Committer: identity}},
		{"committer with carriage return", Commit{Tree: treeHash, Author: identity, Committer: "c\r"}},
		{"multi-line signature", Commit{Tree: treeHash, Author: identity, Committer: identity, GPGSig: "BEGIN\nEND"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := tt.commit.Serialize()
			assert.Nil(t, payload)
			assert.True(t, errors.Is(err, objects.ErrMalformedCommit), "got %v", err)
		})
	}
}

func TestCommitBadDigestKeepsHashCause(t *testing.T) {
	c := Commit{Tree: "nothex", Author: identity, Committer: identity}
	_, err := c.Serialize()
	assert.True(t, errors.Is(err, objects.ErrMalformedHash), "got %v", err)
}

func TestCommitFullHeaderFixture(t *testing.T) {
	payload := "tree " + treeHash + "\n" +
		"parent " + parentHash + "\n" +
		"author " + identity + "\n" +
		"commiter Jane Roe <jane@example.com> 1609459300 +0100\n" +
		"gpgsig -----BEGIN PGP SIGNATURE-----\n" +
		" iQEzBAABCAAd -----END PGP SIGNATURE-----\n" +
		"\n" +
		"one line message\n"

	var c Commit
	require.NoError(t, c.Deserialize(objects.ObjectContent(payload)))

	assert.Equal(t, objects.ObjectHash(treeHash), c.Tree)
	assert.Equal(t, []objects.ObjectHash{parentHash}, c.Parents)
	assert.Equal(t, identity, c.Author)
	assert.Equal(t, "Jane Roe <jane@example.com> 1609459300 +0100", c.Committer)
	assert.Equal(t, "-----BEGIN PGP SIGNATURE-----iQEzBAABCAAd -----END PGP SIGNATURE-----", c.GPGSig)
	assert.Equal(t, "one line message\n", c.Message)

	// Re-encoding writes the canonical key and the folded signature on one line.
	out, err := c.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\ncommitter Jane Roe")
	assert.NotContains(t, out.String(), "commiter ")

	var again Commit
	require.NoError(t, again.Deserialize(out))
	assert.Equal(t, c, again)
}
