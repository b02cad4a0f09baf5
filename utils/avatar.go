package utils

import (
	"fmt"
	"strings"
)

// AvatarColors are the background colors cycled through for initials
// avatars.
var AvatarColors = []string{
	"FF6B6B", "4ECDC4", "45B7D1", "96CEB4", "FFEAA7",
	"DDA0DD", "98D8C8", "F7DC6F", "BB8FCE", "85C1E9",
}

// GenerateAvatarWithInitials builds a DiceBear initials avatar URL for
// a user's display name.
func GenerateAvatarWithInitials(name string) string {
	initials := GetInitialsFromName(name)
	color := AvatarColors[len(initials+name)%len(AvatarColors)]
	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s&backgroundColor=%s", initials, color)
}

// GetInitialsFromName extracts up to two initials from a full name.
func GetInitialsFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}

	initials := ""
	for _, word := range strings.Fields(name) {
		initials += strings.ToUpper(string([]rune(word)[0]))
		if len(initials) == 2 {
			break
		}
	}
	return initials
}
