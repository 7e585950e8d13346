package analytics

import "fmt"

const (
	maxBlogIDLength = 64
	likerHashLength = 16
)

// ValidateLikeEventPayload validates like event payload fields.
func ValidateLikeEventPayload(payload LikeEventPayload) error {
	if payload.BlogID == "" {
		return fmt.Errorf("blog_id is required")
	}
	if len(payload.BlogID) > maxBlogIDLength {
		return fmt.Errorf("blog_id too long")
	}
	if payload.LikerHash == "" {
		return fmt.Errorf("liker_hash is required")
	}
	if len(payload.LikerHash) != likerHashLength || !isHex(payload.LikerHash) {
		return fmt.Errorf("liker_hash must be %d hex chars", likerHashLength)
	}
	if payload.LikedAt <= 0 {
		return fmt.Errorf("liked_at must be set")
	}
	return nil
}

func isHex(value string) bool {
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') {
			continue
		}
		return false
	}
	return true
}
