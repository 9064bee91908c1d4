// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators rejects malformed record identifiers, empty payloads and
// incomplete pseudonym searches before they reach the compliance layer.
//
// A Validator accepts the value to check and, optionally, the names of the
// fields to restrict the check to. The service layer wraps the record service
// with a validating decorator so transport code never validates on its own.
package validators

import "context"

// Validator checks one value. When fields are given only those fields are
// checked.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
