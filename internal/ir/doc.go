// Package ir provides the value types shared by every pageport package:
// catalog records, generated pages, plans and the request records that
// drive the planners.
//
// This package contains type definitions only (plus canonical encoding for
// fingerprints). All other internal packages import ir; ir imports nothing
// internal.
//
// Key design constraints:
//   - Values are never mutated after construction; every grid carried
//     through a plan is a fresh GridSize
//   - JSON tags use camelCase, matching the request/response field names
//   - Ordered lists stay ordered: consumers render them top-to-bottom
//   - Optional request fields are pointers so "absent" differs from zero
package ir
