// Package types defines the sexagenary data model (stems, branches, the
// sixty pairs and four pillars), the Calendar and BoardBuilder interfaces
// consumed by the search and mansion engines, the tool Config, and the
// standard error values.
package types
