package objects

import "github.com/KostasZigo/gitlet/utils"

// Object represents any gitlet object that can be stored
// All gitlet objects (blobs, trees, commits) must implement this interface
type Object interface {
	// Hash returns the SHA-1 hash of the object
	Hash() string

	// Type returns the object type written in the header
	Type() utils.ObjectType

	// Content returns the object body without header
	Content() []byte

	// Data returns the complete object data including header
	// Format: "<type> <size>\0<content>"
	Data() []byte
}
