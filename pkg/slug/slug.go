// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives category and genre slugs from display names.
//
// Output always matches ^[-a-z0-9]+$ and never exceeds [MaxLength], so a
// generated slug passes the same validation as a client-supplied one.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug the catalog stores.
const MaxLength = 50

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks      = transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
)

// From converts an arbitrary Unicode string into an ASCII slug.
//
// # Pipeline
//
//  1. NFD-decompose and drop combining marks ("Café" → "Cafe").
//  2. Lowercase.
//  3. Collapse every run of other characters into one hyphen.
//  4. Trim hyphens and cut to [MaxLength] on a hyphen boundary when possible.
//
// A name with no ASCII letters or digits yields "".
func From(s string) string {
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if cut := strings.LastIndexByte(result, '-'); cut > MaxLength/2 {
			result = result[:cut]
		}
		result = strings.Trim(result, "-")
	}

	return result
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
