package utils

import (
	"encoding/hex"
	"fmt"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/multiformats/go-multihash"
)

type ObjectType string

const (
	BlobObjectType   ObjectType = "blob"
	TreeObjectType   ObjectType = "tree"
	CommitObjectType ObjectType = "commit"
)

func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, TreeObjectType, CommitObjectType:
		return true
	default:
		return false
	}
}

// ComputeHash calculates the object id for content of the given type.
// The digest is taken over "ObjectType <size>\0<content>" with the multihash
// function named by constants.HashCode; the id is the hex of the raw digest.
func ComputeHash(content []byte, objectType ObjectType) (string, error) {
	if !objectType.IsValid() {
		return "", fmt.Errorf("invalid object type: %s - hash not computed", objectType)
	}

	header := fmt.Sprintf("%v %d\x00", objectType, len(content))
	data := append([]byte(header), content...)

	mh, err := multihash.Sum(data, constants.HashCode, -1)
	if err != nil {
		return "", fmt.Errorf("failed to compute multihash: %w", err)
	}

	decoded, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("failed to decode multihash: %w", err)
	}

	return hex.EncodeToString(decoded.Digest), nil
}

// IsHexHash reports whether s looks like a full-length object id.
func IsHexHash(s string) bool {
	if len(s) != constants.HashStringLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ShortHash abbreviates an object id for display.
func ShortHash(hash string) string {
	if len(hash) <= constants.ShortHashLength {
		return hash
	}
	return hash[:constants.ShortHashLength]
}
