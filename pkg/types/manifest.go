package types

// ManifestFileName is the manifest file inside every overlay directory
const ManifestFileName = "overlay.config.json"

// Metadata is the informational header of a manifest
type Metadata struct {
	Name        string
	Description string
	Version     string
}

// Entry is a single target in the manifest's files section
type Entry struct {
	Target    string
	Directive Directive
}

// Manifest is a loaded overlay manifest. It is never modified after loading.
type Manifest struct {
	// Name is the overlay name the manifest was loaded for
	Name string
	// Dir is the overlay directory, as resolved by the loader
	Dir string
	// Metadata is nil when the manifest has no metadata section
	Metadata *Metadata
	// Entries are in manifest order
	Entries []Entry
}
