package tenderportal

import (
	"fmt"
	"regexp"
)

// Flag classification codes ride in the icon filenames. The portal uses two
// naming conventions depending on the page generation that produced the
// markup; the older one is only tried when the current one misses.
var (
	flagIconCurrent = regexp.MustCompile(`(?i)notice_([a-z]+)\.(?:gif|png)$`)
	flagIconLegacy  = regexp.MustCompile(`(?i)img_([a-z]+)_icon\.(?:gif|png)$`)
)

// DecodeFlag extracts the classification code from an icon image path.
// Flags are integral classification data: an undecodable icon fails loudly
// instead of silently dropping the flag.
func DecodeFlag(src string) (string, error) {
	if groups := flagIconCurrent.FindStringSubmatch(src); len(groups) == 2 {
		return groups[1], nil
	}
	if groups := flagIconLegacy.FindStringSubmatch(src); len(groups) == 2 {
		return groups[1], nil
	}
	return "", fmt.Errorf("%w: icon %q matches no known convention", ErrFlagParse, src)
}
