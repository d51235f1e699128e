// Package domain holds the request and response shapes of the fix api
package domain

// MaxText is the largest text accepted in one request, in runes
const MaxText = 1 << 20

// FixInput is the body of POST /fix
type FixInput struct {
	Text    string `json:"text"              validate:"required,max=1048576"`
	Extract string `json:"extract,omitempty" validate:"max=1024"`
	Ignore  string `json:"ignore,omitempty"  validate:"max=1024"`
	Shallow bool   `json:"shallow,omitempty"`
}

// FixOutput is the result of POST /fix
type FixOutput struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// ScanInput is the body of POST /scan
type ScanInput struct {
	Text string `json:"text" validate:"required,max=1048576"`
}

// ScanURL is one URL found by POST /scan
type ScanURL struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	URL   string `json:"url"`
}

// ScanOutput is the result of POST /scan
type ScanOutput struct {
	URLs []ScanURL `json:"urls"`
}
