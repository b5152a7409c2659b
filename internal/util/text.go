package util

import (
	"regexp"
	"strings"
)

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	mentionRe = regexp.MustCompile(`@(\w+)`)
	urlRe     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagRe     = regexp.MustCompile(`[@#]\w+`)
	wordRe    = regexp.MustCompile(`\b\w{4,}\b`)
)

// Common stop words filtered out of keyword extraction
var stopWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {},
	"that": {}, "have": {}, "i": {}, "it": {}, "for": {}, "not": {}, "on": {},
	"with": {}, "he": {}, "as": {}, "you": {}, "do": {}, "at": {}, "this": {},
	"but": {}, "his": {}, "by": {}, "from": {}, "is": {}, "are": {}, "was": {},
	"my": {}, "me": {}, "so": {}, "if": {}, "just": {}, "like": {}, "get": {},
	"can": {}, "will": {}, "about": {}, "what": {}, "they": {}, "their": {},
}

// ExtractHashtags returns the hashtag bodies in text, original casing, in order
func ExtractHashtags(text string) []string {
	var out []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// ExtractMentions returns the mentioned handles in text, original casing, in order
func ExtractMentions(text string) []string {
	var out []string
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// ExtractKeywords returns lowercased words of four or more characters after
// removing URLs, hashtags, mentions and stop words.
func ExtractKeywords(text string) []string {
	text = urlRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")

	var out []string
	for _, w := range wordRe.FindAllString(text, -1) {
		lower := strings.ToLower(w)
		if _, stop := stopWords[lower]; stop {
			continue
		}
		out = append(out, lower)
	}
	return out
}
