// Package record defines the student record value shared by the store,
// the persistence layer, and the command line.
//
// This package contains the value type and its derived-field rules only.
// All other internal packages import record; record imports nothing internal.
//
// Key design constraints:
//   - ID is fixed at construction; nothing in this package changes it
//   - Average is a cache of Grades and is recomputed on every grade change
//   - Names are compared through Normalize (NFC + case folding), never raw
package record
