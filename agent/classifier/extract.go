package classifier

import (
	"regexp"
	"strconv"
	"strings"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

var (
	customerIDPattern = regexp.MustCompile(`(?:id|customer)\s*(\d+)`)
	emailPattern      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// CustomerID resolves the customer id for a query: the caller-supplied
// context wins, otherwise the first "id N" / "customer N" match in the
// lowercased text is parsed.
func CustomerID(text string, qctx contractx.QueryContext) (int64, bool) {
	if qctx.CustomerID != 0 {
		return qctx.CustomerID, true
	}

	m := customerIDPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Email returns the first email address present in the text.
func Email(text string) (string, bool) {
	m := emailPattern.FindString(text)
	return m, m != ""
}
