package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/utkarsh5026/srcobjects/pkg/common/fileops"
	"github.com/utkarsh5026/srcobjects/pkg/common/logger"
	"github.com/utkarsh5026/srcobjects/pkg/objects"
	"github.com/utkarsh5026/srcobjects/pkg/objects/blob"
	"github.com/utkarsh5026/srcobjects/pkg/objects/commit"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tag"
	"github.com/utkarsh5026/srcobjects/pkg/objects/tree"
	"github.com/utkarsh5026/srcobjects/pkg/repository/scpath"
)

const (
	pkgName = "store"

	// CodeNotInitialized is returned when the store is used before Initialize.
	CodeNotInitialized = "NOT_INITIALIZED"
)

// objectFileMode is applied to every object file; objects are never modified in place.
const objectFileMode os.FileMode = 0o444

// FileObjectStore keeps each object as a zlib-compressed envelope in a file named
// by its digest.
//
// Directory Structure:
//
//	.source/objects/
//	├─ ab/              first 2 characters of the digest
//	│  └─ cdef123...    remaining 38 characters
//	└─ ...
//
// Files are written through a temp file in the same directory followed by a
// rename, so a reader either sees no file or the whole file. Writing a digest
// that already exists replaces the file with identical bytes.
type FileObjectStore struct {
	fs          afero.Fs
	objectsPath scpath.SourcePath
	level       int
	verify      bool
	log         *slog.Logger
}

// NewFileObjectStore creates a store on fs. Call Initialize before use.
func NewFileObjectStore(fsys afero.Fs, opts ...Option) *FileObjectStore {
	s := defaultStore()
	s.fs = fsys
	for _, opt := range opts {
		opt(&s)
	}
	s.log = logger.OrDefault(s.log)
	return &s
}

// Initialize sets up the object store by creating the objects directory structure.
func (fos *FileObjectStore) Initialize(repoPath scpath.RepositoryPath) error {
	objectsPath := repoPath.SourcePath().ObjectsPath()

	if err := fileops.EnsureDir(fos.fs, objectsPath.String()); err != nil {
		return objects.NewError(pkgName, objects.CodeStorageWrite, "initialize", "", err)
	}

	fos.objectsPath = objectsPath
	return nil
}

// IsInitialized checks if the object store has been initialized
func (fos *FileObjectStore) IsInitialized() bool {
	return fos.objectsPath.IsValid()
}

// ObjectsPath returns the path to the objects directory
func (fos *FileObjectStore) ObjectsPath() scpath.SourcePath {
	return fos.objectsPath
}

// WriteObject serializes obj, wraps it in its envelope and hashes it. With
// persist set, the compressed envelope is placed at <objects>/<2>/<38>.
//
// Filesystem failures are reported as STORAGE_WRITE; serialization failures are
// returned as the codec reported them.
func (fos *FileObjectStore) WriteObject(obj objects.BaseObject, persist bool) (objects.ObjectHash, error) {
	env, err := objects.Envelope(obj)
	if err != nil {
		return "", err
	}
	hash := env.Hash()

	if !persist {
		return hash, nil
	}
	if err := fos.ensureInitialized(); err != nil {
		return "", err
	}

	compressed, err := env.Compress(fos.level)
	if err != nil {
		return "", writeError(hash, "compress", err)
	}

	filePath := fos.objectsPath.ObjectFilePath(hash.String())
	if err := fileops.EnsureDir(fos.fs, filePath.Dir().String()); err != nil {
		return "", writeError(hash, "mkdir", err)
	}

	if err := fileops.AtomicWrite(fos.fs, filePath.String(), compressed.Bytes(), objectFileMode); err != nil {
		return "", writeError(hash, "write", err)
	}

	fos.log.Debug("object written",
		"hash", hash.String(),
		"kind", obj.Type().String(),
		"size", len(env),
		"compressed", len(compressed))

	return hash, nil
}

// ReadObject loads the object stored under hash and decodes it with the codec
// named by its envelope.
//
// Errors, in the order they are checked:
//   - OBJECT_NOT_FOUND: no file for the digest
//   - CORRUPT_OBJECT: the file is not a zlib stream, or its envelope does not hash
//     to the requested digest
//   - MALFORMED_ENVELOPE or UNKNOWN_KIND: from decoding the envelope header
//   - codec errors from Deserialize
func (fos *FileObjectStore) ReadObject(hash objects.ObjectHash) (objects.BaseObject, error) {
	objType, content, err := fos.ReadRaw(hash)
	if err != nil {
		return nil, err
	}

	obj, err := DecodeObject(objType, content)
	if err != nil {
		return nil, err
	}

	fos.log.Debug("object read", "hash", hash.String(), "kind", objType.String())
	return obj, nil
}

// ReadRaw returns the kind and payload stored under hash without decoding the
// payload.
func (fos *FileObjectStore) ReadRaw(hash objects.ObjectHash) (objects.ObjectType, objects.ObjectContent, error) {
	env, err := fos.readEnvelope(hash)
	if err != nil {
		return "", nil, err
	}

	kind, _, content, err := objects.DecodeEnvelope(env)
	if err != nil {
		return "", nil, err
	}

	objType, err := objects.ParseObjectType(kind)
	if err != nil {
		return "", nil, err
	}

	return objType, content, nil
}

// HasObject checks if a object file exists for hash.
func (fos *FileObjectStore) HasObject(hash objects.ObjectHash) (bool, error) {
	_, filePath, err := fos.validateAndResolvePath(hash)
	if err != nil {
		return false, err
	}

	ok, err := fileops.Exists(fos.fs, filePath.String())
	if err != nil {
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return ok, nil
}

// ObjectCount returns the number of object files in the store. Temp files left
// by interrupted writes are not counted.
func (fos *FileObjectStore) ObjectCount() (int, error) {
	if err := fos.ensureInitialized(); err != nil {
		return 0, err
	}

	count := 0
	err := afero.Walk(fos.fs, fos.objectsPath.String(), func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && !strings.HasPrefix(info.Name(), ".tmp-") {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count objects: %w", err)
	}

	return count, nil
}

// MinPrefixLength is the shortest digest prefix FindByPrefix accepts.
const MinPrefixLength = 4

// FindByPrefix returns the digests of stored objects starting with prefix,
// sorted. The prefix is case-insensitive and must be 4 to 40 hex characters.
func (fos *FileObjectStore) FindByPrefix(prefix string) ([]objects.ObjectHash, error) {
	if err := fos.ensureInitialized(); err != nil {
		return nil, err
	}

	prefix = strings.ToLower(prefix)
	if len(prefix) < MinPrefixLength || len(prefix) > objects.HashLength || !isHex(prefix) {
		return nil, objects.NewError(pkgName, objects.CodeMalformedHash, "prefix",
			fmt.Sprintf("%q is not a digest prefix", prefix), nil)
	}

	dir, rest := prefix[:2], prefix[2:]
	entries, err := afero.ReadDir(fos.fs, fos.objectsPath.Join(dir).String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	var matches []objects.ObjectHash
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, rest) {
			continue
		}
		if h, err := objects.NewObjectHashFromString(dir + name); err == nil {
			matches = append(matches, h)
		}
	}
	return matches, nil
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (fos *FileObjectStore) readEnvelope(hash objects.ObjectHash) (objects.SerializedObject, error) {
	hash, filePath, err := fos.validateAndResolvePath(hash)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fos.fs, filePath.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, objects.NewError(pkgName, objects.CodeObjectNotFound, "read",
				fmt.Sprintf("object %s not found", hash), nil).WithContext("hash", hash.String())
		}
		return nil, objects.NewError(pkgName, objects.CodeCorruptObject, "read", "cannot read object file", err).
			WithContext("hash", hash.String())
	}

	env, err := objects.CompressedData(data).Decompress()
	if err != nil {
		return nil, objects.NewError(pkgName, objects.CodeCorruptObject, "decompress", "", err).
			WithContext("hash", hash.String())
	}

	if fos.verify {
		if actual := env.Hash(); actual != hash {
			return nil, objects.NewError(pkgName, objects.CodeCorruptObject, "verify",
				fmt.Sprintf("content hashes to %s", actual), nil).WithContext("hash", hash.String())
		}
	}

	return env, nil
}

// DecodeObject parses payload with the codec for kind.
func DecodeObject(kind objects.ObjectType, payload objects.ObjectContent) (objects.BaseObject, error) {
	obj, err := newObject(kind)
	if err != nil {
		return nil, err
	}
	if err := obj.Deserialize(payload); err != nil {
		return nil, err
	}
	return obj, nil
}

// newObject is the single place where a kind is mapped to its codec.
func newObject(objType objects.ObjectType) (objects.BaseObject, error) {
	switch objType {
	case objects.BlobType:
		return &blob.Blob{}, nil
	case objects.TreeType:
		return &tree.Tree{}, nil
	case objects.CommitType:
		return &commit.Commit{}, nil
	case objects.TagType:
		return &tag.Tag{}, nil
	default:
		return nil, objects.NewError(pkgName, objects.CodeUnknownKind, "dispatch",
			fmt.Sprintf("unknown object type %q", objType), nil)
	}
}

// validateAndResolvePath normalizes hash to lower case and maps it to its file.
func (fos *FileObjectStore) validateAndResolvePath(hash objects.ObjectHash) (objects.ObjectHash, scpath.SourcePath, error) {
	if err := fos.ensureInitialized(); err != nil {
		return "", "", err
	}
	normalized, err := objects.NewObjectHashFromString(hash.String())
	if err != nil {
		return "", "", err
	}
	return normalized, fos.objectsPath.ObjectFilePath(normalized.String()), nil
}

func (fos *FileObjectStore) ensureInitialized() error {
	if !fos.IsInitialized() {
		return objects.NewError(pkgName, CodeNotInitialized, "check", "object store not initialized", nil)
	}
	return nil
}

func writeError(hash objects.ObjectHash, op string, cause error) error {
	return objects.NewError(pkgName, objects.CodeStorageWrite, op, "", cause).WithContext("hash", hash.String())
}
