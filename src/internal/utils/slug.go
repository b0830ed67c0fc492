/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	slugMinLength = 3
	slugMaxLength = 63
	maxRetries    = 5
	suffixLength  = 4
)

var (
	// validSlugRegex matches lowercase alphanumeric with hyphens (not at start/end, no consecutive)
	validSlugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	// invalidCharsRegex matches any character that is not alphanumeric, hyphen, underscore, or space
	invalidCharsRegex = regexp.MustCompile(`[^a-z0-9\-_ ]`)
	// multipleHyphensRegex matches consecutive hyphens
	multipleHyphensRegex = regexp.MustCompile(`-+`)
)

var (
	ErrSlugEmpty       = errors.New("slug cannot be empty")
	ErrSlugTooShort    = errors.New("slug must be at least 3 characters")
	ErrSlugTooLong     = errors.New("slug must be at most 63 characters")
	ErrSlugInvalid     = errors.New("slug must be lowercase alphanumeric with hyphens only (no consecutive hyphens, cannot start or end with hyphen)")
	ErrSlugGenFailed   = errors.New("failed to generate unique slug after maximum retries")
	ErrSlugSourceEmpty = errors.New("source string cannot be empty")
)

// ValidateSlug validates a user-provided slug. Slugs are lowercase
// alphanumeric with single hyphens, 3 to 63 characters.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrSlugEmpty
	}
	if len(slug) < slugMinLength {
		return ErrSlugTooShort
	}
	if len(slug) > slugMaxLength {
		return ErrSlugTooLong
	}
	if !validSlugRegex.MatchString(slug) {
		return ErrSlugInvalid
	}
	return nil
}

// GenerateSlug generates a URL-friendly slug from a given source string
// (e.g. a project name). If existsCheck is provided, the generated slug is
// verified against it; on collision a random suffix is appended and the
// check retried up to 5 times.
func GenerateSlug(source string, existsCheck func(string) bool) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", ErrSlugSourceEmpty
	}

	slug := sanitizeToSlug(source)

	if existsCheck == nil {
		return slug, nil
	}

	if !existsCheck(slug) {
		return slug, nil
	}

	// Slug exists, try with random suffix
	for i := 0; i < maxRetries; i++ {
		suffix := generateRandomSuffix()
		candidate := slug

		// Ensure we don't exceed max length when adding suffix
		maxBaseLength := slugMaxLength - suffixLength - 1 // -1 for the hyphen
		if len(candidate) > maxBaseLength {
			candidate = candidate[:maxBaseLength]
		}

		candidate = candidate + "-" + suffix

		if !existsCheck(candidate) {
			return candidate, nil
		}
	}

	return "", ErrSlugGenFailed
}

// sanitizeToSlug converts a string to a valid slug format
func sanitizeToSlug(s string) string {
	slug := strings.ToLower(s)

	// Replace spaces and underscores with hyphens
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	// Remove invalid characters
	slug = invalidCharsRegex.ReplaceAllString(slug, "")

	// Collapse multiple hyphens into single hyphen
	slug = multipleHyphensRegex.ReplaceAllString(slug, "-")

	// Trim leading and trailing hyphens
	slug = strings.Trim(slug, "-")

	// Enforce length limits
	if len(slug) > slugMaxLength {
		slug = slug[:slugMaxLength]
		slug = strings.TrimRight(slug, "-")
	}

	// If slug is too short after sanitization, pad with random suffix
	if len(slug) < slugMinLength {
		if slug == "" {
			slug = generateRandomSuffix() + generateRandomSuffix()
		} else {
			slug = slug + "-" + generateRandomSuffix()
		}
	}

	return slug
}

// generateRandomSuffix generates a random 4-character alphanumeric suffix
func generateRandomSuffix() string {
	return uuid.New().String()[:suffixLength]
}
