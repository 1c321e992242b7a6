package domain

// DefaultCollection is the collection name used when none is given.
const DefaultCollection = "general"

// CollectionInfo summarises one named collection for status reporting.
type CollectionInfo struct {
	// Name is the human-chosen collection name.
	Name string

	// Count is the number of records in the collection.
	Count int

	// MetadataKeys is the key set of one sampled record's metadata.
	// Empty for an empty collection.
	MetadataKeys []string
}
