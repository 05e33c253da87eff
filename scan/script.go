package scan

import _ "embed"

// The scripts are an opaque protocol contract with the browser: extractScript
// returns {family: [codepoints]} with the '*' union maintained in-page,
// spiderScript returns an array of raw href strings.

//go:embed scripts/extract.js
var extractScript string

//go:embed scripts/spider.js
var spiderScript string
