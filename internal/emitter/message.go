package emitter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var messages = map[string]string{
	"login":   "Login successful",
	"signup":  "Signup successful",
	"signout": "Signout successful",
	"user":    "User data",
	"admin":   "Admin dashboard",
	"home":    "Welcome to the home page",
	"about":   "About us",
	"news":    "Latest news",
	"blogs":   "Blog posts",
}

// Message derives the response text for an endpoint. Known resource names map
// to a fixed sentence; anything else becomes "<Name> resource".
func Message(endpoint string) string {
	name := strings.TrimPrefix(endpoint, "/")
	if msg, ok := messages[name]; ok {
		return msg
	}

	if name == "" {
		return "Root resource"
	}

	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:] + " resource"
}
