package merge

import (
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/constants"
)

type Action int

const (
	// TakeOther writes the other branch's version and stages it.
	TakeOther Action = iota + 1

	// Remove stages a removal and deletes the working file.
	Remove

	// Conflict writes both versions between markers and stages the result.
	Conflict

	// AddFromOther writes a file the other branch introduced after the split.
	AddFromOther
)

func (a Action) String() string {
	switch a {
	case TakeOther:
		return "take-other"
	case Remove:
		return "remove"
	case Conflict:
		return "conflict"
	case AddFromOther:
		return "add"
	default:
		return "unknown"
	}
}

// Change is the action required for one path. HeadBlob and OtherBlob are
// empty when the path is absent on that side.
type Change struct {
	Path      string
	Action    Action
	HeadBlob  string
	OtherBlob string
}

// Classify compares the split, head and other snapshots (name -> blob id)
// and returns the changes the merge must apply, sorted by path. Paths head
// changed alone, or that both sides changed identically, need nothing.
func Classify(split, head, other map[string]string) []Change {
	var changes []Change

	for path, splitBlob := range split {
		headBlob := head[path]
		otherBlob := other[path]

		switch {
		case headBlob == splitBlob && otherBlob != splitBlob:
			action := TakeOther
			if otherBlob == "" {
				action = Remove
			}
			changes = append(changes, Change{Path: path, Action: action, HeadBlob: headBlob, OtherBlob: otherBlob})
		case headBlob != splitBlob && otherBlob != splitBlob && headBlob != otherBlob:
			changes = append(changes, Change{Path: path, Action: Conflict, HeadBlob: headBlob, OtherBlob: otherBlob})
		}
	}

	for path, otherBlob := range other {
		if _, inSplit := split[path]; inSplit {
			continue
		}
		if _, inHead := head[path]; inHead {
			continue
		}
		changes = append(changes, Change{Path: path, Action: AddFromOther, OtherBlob: otherBlob})
	}

	slices.SortFunc(changes, func(a, b Change) int {
		return strings.Compare(a.Path, b.Path)
	})
	return changes
}

// ConflictContent renders a conflicted file. A side missing from its
// commit contributes nothing between the markers.
func ConflictContent(head, other []byte) []byte {
	content := make([]byte, 0, len(constants.ConflictHeadMarker)+len(head)+
		len(constants.ConflictSeparator)+len(other)+len(constants.ConflictOtherMarker))
	content = append(content, constants.ConflictHeadMarker...)
	content = append(content, head...)
	content = append(content, constants.ConflictSeparator...)
	content = append(content, other...)
	content = append(content, constants.ConflictOtherMarker...)
	return content
}
