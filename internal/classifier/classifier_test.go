package classifier

import (
	"testing"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

func TestIsMedia(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"properties/42/images/001.jpg", true},
		{"users/1/profile/avatar.JPEG", true},
		{"a/b/c.png", true},
		{"a/b/c.webp", true},
		{"a/b/c.gif", true},
		{"videos/tour.mp4", true},
		{"videos/tour.MOV", true},
		{"videos/tour.webm", true},
		{"videos/tour.avi", true},
		{"videos/tour.mkv", true},
		{"misc/readme.txt", false},
		{"c/unknown/file.bin", false},
		{"archive.jpg.zip", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := IsMedia(tt.key); got != tt.want {
			t.Errorf("IsMedia(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIsDerivative(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"properties/42/images/001.medium.jpg", true},
		{"properties/42/images/001.thumb.jpg", true},
		{"videos/tour.preview.mp4", true},
		{"properties/42/images/001.jpg", false},
		{"users/1/profile/avatar.jpg", false},
		{"thumbs/file.jpg", false},
	}
	for _, tt := range tests {
		if got := IsDerivative(tt.key); got != tt.want {
			t.Errorf("IsDerivative(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		key  string
		want model.MediaRole
	}{
		{"users/1/profile/avatar.jpg", model.RoleAvatar},
		{"users/1/profile/cover.jpg", model.RoleCover},
		{"properties/42/images/001.jpg", model.RoleProperty},
		{"a/properties/1/images/001.jpg", model.RoleProperty},
		{"ai-jobs/77/generated/out.png", model.RoleAIGenerated},
		{"c/unknown/file.bin", model.RoleNone},
		{"misc/readme.txt", model.RoleNone},
		// "images" before "properties" must not match the property predicate
		{"images/properties/42/001.jpg", model.RoleNone},
	}
	for _, tt := range tests {
		if got := RoleOf(tt.key); got != tt.want {
			t.Errorf("RoleOf(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestRoleOf_AvatarWinsOverProperty(t *testing.T) {
	// predicates are ordered; avatar paths under a property tree still
	// resolve to avatar
	key := "properties/42/images/profile/avatar.jpg"
	if got := RoleOf(key); got != model.RoleAvatar {
		t.Errorf("RoleOf(%q) = %q, want %q", key, got, model.RoleAvatar)
	}
}
