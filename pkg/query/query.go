// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query reads optional filter values from URL query strings.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// String returns the trimmed value of key, or "" when absent.
func String(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// Int parses key as an integer. An absent or blank key yields (nil, nil).
func Int(values url.Values, key string) (*int, error) {
	raw := String(values, key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
