package workspace

import "fmt"

// checkCanAddTag verifies the tag limit allows one more tag.
func checkCanAddTag(current, max int) error {
	if max > 0 && current >= max {
		return fmt.Errorf("tag limit reached (%d/%d)", current, max)
	}
	return nil
}
