package classifier

import (
	"path"
	"strings"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".avi":  true,
	".mkv":  true,
}

// derivativeInfixes are reserved for keys written by this pipeline and must
// never appear in an original upload path. Checking them before any
// processing attempt is the sole guard against the derivative-write →
// new-event → reprocess loop.
var derivativeInfixes = []string{".thumb.", ".medium.", ".preview."}

// rolePredicates are evaluated in order; the first match wins. An unmatched
// key resolves to RoleNone, which means "tolerate and skip" rather than an
// error, so new upload locations never break the worker.
var rolePredicates = []struct {
	role  model.MediaRole
	match func(key string) bool
}{
	{model.RoleAvatar, func(key string) bool { return strings.Contains(key, "/profile/avatar") }},
	{model.RoleCover, func(key string) bool { return strings.Contains(key, "/profile/cover") }},
	{model.RoleProperty, func(key string) bool { return containsInOrder(key, "properties/", "/images/") }},
	{model.RoleAIGenerated, func(key string) bool { return containsInOrder(key, "ai-jobs/", "/generated/") }},
}

// IsMedia reports whether the key's extension is on the image or video
// allow-list. Case-insensitive.
func IsMedia(key string) bool {
	return IsImage(key) || IsVideo(key)
}

// IsImage reports whether the key names an image upload.
func IsImage(key string) bool {
	return imageExtensions[ext(key)]
}

// IsVideo reports whether the key names a video upload.
func IsVideo(key string) bool {
	return videoExtensions[ext(key)]
}

// IsDerivative reports whether the key was written by this pipeline itself.
func IsDerivative(key string) bool {
	for _, infix := range derivativeInfixes {
		if strings.Contains(key, infix) {
			return true
		}
	}
	return false
}

// RoleOf derives the business role of an object from its key path.
func RoleOf(key string) model.MediaRole {
	for _, p := range rolePredicates {
		if p.match(key) {
			return p.role
		}
	}
	return model.RoleNone
}

func ext(key string) string {
	return strings.ToLower(path.Ext(key))
}

// containsInOrder reports whether key contains first, then second somewhere
// after it.
func containsInOrder(key, first, second string) bool {
	i := strings.Index(key, first)
	if i < 0 {
		return false
	}
	return strings.Contains(key[i+len(first):], second)
}
