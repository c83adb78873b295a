// forum/pseudonym.go
package forum

import (
	"fmt"
)

// Word tables for pseudonym generation. Order matters: the hash indexes
// into these by position, and pseudonyms must stay stable across releases.
var pseudonymAdjectives = [10]string{
	"Gentle", "Brave", "Quiet", "Bright", "Steady",
	"Kind", "Calm", "Warm", "Hopeful", "Patient",
}

var pseudonymNouns = [10]string{
	"Willow", "Harbor", "River", "Meadow", "Lantern",
	"Cedar", "Dove", "Summit", "Haven", "Fern",
}

// GeneratePseudonym maps an anonymous id to a display name like
// "GentleMeadow-770". The same id always yields the same name; two
// different ids may collide, which is acceptable for display purposes.
func GeneratePseudonym(anonymousID string) string {
	if anonymousID == "" {
		anonymousID = "anon"
	}
	var h uint32
	for _, r := range anonymousID {
		h = h*31 + uint32(r)
	}
	adjective := pseudonymAdjectives[h%10]
	noun := pseudonymNouns[(h>>8)%10]
	number := h%900 + 100
	return fmt.Sprintf("%s%s-%d", adjective, noun, number)
}
