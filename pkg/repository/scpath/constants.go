package scpath

const (
	// SourceDir is the name of the repository metadata directory
	SourceDir = ".source"

	// ObjectsDir holds the content-addressed object files
	ObjectsDir = "objects"

	// RefsDir is the name of the refs directory
	RefsDir = "refs"

	// HeadsDir is the name of the heads directory (branches)
	HeadsDir = "heads"

	// TagsDir is the name of the tags directory
	TagsDir = "tags"

	// ConfigFile is the name of the config file
	ConfigFile = "config"

	// HeadFile is the name of the HEAD file
	HeadFile = "HEAD"

	// DescriptionFile is the name of the repository description file
	DescriptionFile = "description"

	// IgnoreFile lists patterns skipped when building trees
	IgnoreFile = ".sourceignore"
)
