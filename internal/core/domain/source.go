package domain

import "path/filepath"

// SourceKind distinguishes local paths from remote-storage URLs.
type SourceKind int

const (
	// SourceLocal is a file already on disk.
	SourceLocal SourceKind = iota

	// SourceRemoteFile is a remote-storage URL pointing at a single file.
	SourceRemoteFile

	// SourceRemoteFolder is a remote-storage URL pointing at a folder.
	// Folder refs are expanded to SourceRemoteFile refs before any
	// extraction begins; the extractor never sees a folder.
	SourceRemoteFolder
)

// String returns a human-readable kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceLocal:
		return "local"
	case SourceRemoteFile:
		return "remote-file"
	case SourceRemoteFolder:
		return "remote-folder"
	default:
		return "unknown"
	}
}

// SourceRef identifies one unit of work for the pipeline: either a local
// file path or a remote-storage URL (file or folder).
type SourceRef struct {
	// Kind is the reference type.
	Kind SourceKind

	// Path is the local file path. Set for SourceLocal only.
	Path string

	// URL is the remote-storage URL. Set for remote kinds only.
	URL string

	// Name is the file name, when known ahead of fetching. Remote refs
	// produced by folder expansion carry the listed file name here.
	Name string
}

// LocalRef builds a SourceRef for a file on disk.
func LocalRef(path string) SourceRef {
	return SourceRef{Kind: SourceLocal, Path: path, Name: filepath.Base(path)}
}

// RemoteFileRef builds a SourceRef for a remote file URL.
func RemoteFileRef(url string) SourceRef {
	return SourceRef{Kind: SourceRemoteFile, URL: url}
}

// RemoteFolderRef builds a SourceRef for a remote folder URL.
func RemoteFolderRef(url string) SourceRef {
	return SourceRef{Kind: SourceRemoteFolder, URL: url}
}

// IsRemote reports whether the ref requires a network fetch.
func (r SourceRef) IsRemote() bool {
	return r.Kind == SourceRemoteFile || r.Kind == SourceRemoteFolder
}

// Display returns the most useful identifier for logs and summaries:
// the name when known, otherwise the path or URL.
func (r SourceRef) Display() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Kind == SourceLocal {
		return r.Path
	}
	return r.URL
}
