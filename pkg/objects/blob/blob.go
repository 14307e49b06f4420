package blob

import (
	"fmt"

	"github.com/utkarsh5026/srcobjects/pkg/objects"
)

// Blob holds raw file contents. Its payload is the data itself.
type Blob struct {
	content objects.ObjectContent
}

// NewBlob creates a new Blob object from raw data
func NewBlob(data []byte) *Blob {
	return &Blob{content: objects.ObjectContent(data)}
}

// Type returns the object type
func (b *Blob) Type() objects.ObjectType {
	return objects.BlobType
}

// Content returns the raw content of the blob
func (b *Blob) Content() objects.ObjectContent {
	return b.content
}

// Serialize returns the blob data unchanged.
func (b *Blob) Serialize() (objects.ObjectContent, error) {
	return b.content, nil
}

// Deserialize takes the payload as the blob data.
func (b *Blob) Deserialize(data objects.ObjectContent) error {
	b.content = data
	return nil
}

// Size returns the size of the content in bytes
func (b *Blob) Size() objects.ObjectSize {
	return b.content.Size()
}

// Hash returns the digest of the blob's envelope.
func (b *Blob) Hash() objects.ObjectHash {
	return objects.ComputeObjectHash(objects.BlobType, b.content)
}

// String returns a human-readable representation
func (b *Blob) String() string {
	return fmt.Sprintf("Blob{size: %s, hash: %s}", b.content.Size(), b.Hash().Short())
}
