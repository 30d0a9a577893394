package rule

import (
	"strings"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/policy"
)

var levelKeywords = []struct {
	level    policy.Level
	keywords []string
}{
	{policy.LevelDirector, []string{"director", "vp", "vice president"}},
	{policy.LevelManager, []string{"manager", "lead", "head"}},
	{policy.LevelSenior, []string{"senior", "sr"}},
	{policy.LevelJunior, []string{"junior", "jr", "associate"}},
	{policy.LevelEntry, []string{"intern", "trainee", "entry"}},
}

// PositionLevel classifies a position title into a salary band level.
// The first matching keyword group wins; titles matching nothing are mid level.
func PositionLevel(title string) policy.Level {
	lower := strings.ToLower(title)
	for _, group := range levelKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.level
			}
		}
	}
	return policy.LevelMid
}
