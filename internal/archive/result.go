package archive

// Result summarizes a completed split.
type Result struct {
	// Index written alongside the fragments
	Index *Index

	// Size of the original file in bytes
	InputSize int64

	// Total size of the fragment files in bytes
	OutputSize int64
}
