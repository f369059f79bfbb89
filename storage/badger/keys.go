package badger

import (
	"fmt"
	"strings"

	"github.com/poiesic/scriptura/core"
)

// Key prefixes for different data types
const (
	versePrefix      = "verse"
	checkpointPrefix = "chkpt"
)

// makeVerseKey generates a key for an indexed verse.
// Format: verse:versionKey:contentID
func makeVerseKey(version, recordID string) []byte {
	return []byte(fmt.Sprintf("%s%d", makeVersePrefix(version), core.IDFromContent(recordID)))
}

// makeVersePrefix generates the key prefix shared by all verses of a version.
func makeVersePrefix(version string) []byte {
	return []byte(versePrefix + ":" + core.CheckpointKey(version) + ":")
}

// versionFromRecordID extracts the version label from a record ID
// (book:chapter:verse:version).
func versionFromRecordID(id string) (string, bool) {
	parts := strings.SplitN(id, ":", 4)
	if len(parts) != 4 || parts[3] == "" {
		return "", false
	}
	return parts[3], true
}

// makeCheckpointKey generates a key for a version checkpoint.
func makeCheckpointKey(key string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, key))
}
