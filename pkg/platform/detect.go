package platform

import (
	"strings"
	"sync"

	"github.com/ua-parser/uap-go/uaparser"
)

var (
	parserOnce sync.Once
	parser     *uaparser.Parser
)

func uaParser() *uaparser.Parser {
	parserOnce.Do(func() {
		parser = uaparser.NewFromSaved()
	})
	return parser
}

// Detect resolves the platform from a user-agent string. Unknown or empty
// agents resolve to Web.
func Detect(userAgent string) Kind {
	if strings.TrimSpace(userAgent) == "" {
		return Web
	}

	family := strings.ToLower(uaParser().ParseOs(userAgent).Family)
	switch {
	case strings.Contains(family, "tizen"):
		return Samsung
	case strings.Contains(family, "webos"):
		return LG
	}

	// TV firmware strings the regex set does not classify.
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "tizen"), strings.Contains(ua, "smart-tv; linux"):
		return Samsung
	case strings.Contains(ua, "web0s"), strings.Contains(ua, "webos"), strings.Contains(ua, "netcast"):
		return LG
	}
	return Web
}

// Resolve turns a configured kind ("auto", "", or a name) plus an optional
// user agent into a Kind.
func Resolve(configured, userAgent string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(configured)) {
	case "", "auto":
		return Detect(userAgent), nil
	}
	return ParseKind(configured)
}
